package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/football-manager/internal/domain/squad"
	"github.com/riskibarqy/football-manager/internal/infrastructure/repository/memory"
)

func ptr(v string) *string {
	return &v
}

func createLineupSquad(t *testing.T, f squadFixture) string {
	t.Helper()

	created, err := f.service.CreateSquad(t.Context(), CreateSquadInput{
		UserID:    "user-1",
		Name:      "Lineup Lab",
		Formation: "4-3-3",
		Activate:  true,
	})
	if err != nil {
		t.Fatalf("create squad: %v", err)
	}
	return created.Squad.ID
}

func slotPlayers(t *testing.T, f squadFixture, squadID string) map[string]string {
	t.Helper()

	slots, err := f.squads.ListSlots(t.Context(), squadID)
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	out := make(map[string]string, len(slots))
	for _, slot := range slots {
		out[slot.SlotID] = slot.PlayerID
	}
	return out
}

func TestSquadService_UpdateLineup_AssignsGoalkeeper(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)
	gk := memory.SeedPlayerID("gk-01")

	got, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID:     squadID,
		UserID:      "user-1",
		Assignments: []squad.Assignment{{SlotID: "GK_1", PlayerID: &gk}},
	}, f.inventory)
	if err != nil {
		t.Fatalf("update lineup: %v", err)
	}

	for _, slot := range got.Slots {
		if slot.SlotID == "GK_1" {
			if slot.Player == nil || slot.Player.ID != gk {
				t.Fatalf("expected GK_1 filled with %s, got %+v", gk, slot.Player)
			}
			if slot.Player.Stats == nil {
				t.Fatalf("expected detailed stats in lineup response")
			}
			continue
		}
		if slot.PlayerID != "" {
			t.Fatalf("expected %s untouched, got %s", slot.SlotID, slot.PlayerID)
		}
	}
	if got.Counters.Filled != 1 || got.Counters.Empty != 17 {
		t.Fatalf("unexpected counters: %+v", got.Counters)
	}
}

func TestSquadService_UpdateLineup_FullStartingEleven(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)

	assignments := []squad.Assignment{
		{SlotID: "GK_1", PlayerID: ptr(memory.SeedPlayerID("gk-01"))},
		{SlotID: "DF_1", PlayerID: ptr(memory.SeedPlayerID("df-01"))},
		{SlotID: "DF_2", PlayerID: ptr(memory.SeedPlayerID("df-02"))},
		{SlotID: "DF_3", PlayerID: ptr(memory.SeedPlayerID("df-03"))},
		{SlotID: "DF_4", PlayerID: ptr(memory.SeedPlayerID("ut-01"))},
		{SlotID: "MF_1", PlayerID: ptr(memory.SeedPlayerID("mf-01"))},
		{SlotID: "MF_2", PlayerID: ptr(memory.SeedPlayerID("mf-02"))},
		{SlotID: "MF_3", PlayerID: ptr(memory.SeedPlayerID("mf-03"))},
		{SlotID: "FW_1", PlayerID: ptr(memory.SeedPlayerID("fw-01"))},
		{SlotID: "FW_2", PlayerID: ptr(memory.SeedPlayerID("fw-02"))},
		{SlotID: "FW_3", PlayerID: ptr(memory.SeedPlayerID("fw-03"))},
		{SlotID: "BENCH_1", PlayerID: ptr(memory.SeedPlayerID("gk-02"))},
	}

	got, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{SquadID: squadID, UserID: "user-1", Assignments: assignments}, f.inventory)
	if err != nil {
		t.Fatalf("update lineup: %v", err)
	}
	if got.Counters.Filled != 12 {
		t.Fatalf("expected 12 filled slots, got %+v", got.Counters)
	}
}

func TestSquadService_UpdateLineup_PositionMismatchLeavesSlotsUnchanged(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)
	before := slotPlayers(t, f, squadID)

	_, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID: squadID,
		UserID:  "user-1",
		Assignments: []squad.Assignment{
			{SlotID: "MF_1", PlayerID: ptr(memory.SeedPlayerID("mf-01"))},
			{SlotID: "GK_1", PlayerID: ptr(memory.SeedPlayerID("fw-01"))},
		},
	}, f.inventory)
	if !errors.Is(err, squad.ErrPositionMismatch) {
		t.Fatalf("expected ErrPositionMismatch, got %v", err)
	}

	if after := slotPlayers(t, f, squadID); !reflect.DeepEqual(before, after) {
		t.Fatalf("expected slots unchanged after rejection")
	}
}

func TestSquadService_UpdateLineup_DuplicatePlayerLeavesSlotsUnchanged(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)
	before := slotPlayers(t, f, squadID)
	mid := memory.SeedPlayerID("mf-02")

	_, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID: squadID,
		UserID:  "user-1",
		Assignments: []squad.Assignment{
			{SlotID: "MF_1", PlayerID: &mid},
			{SlotID: "MF_2", PlayerID: &mid},
		},
	}, f.inventory)
	if !errors.Is(err, squad.ErrDuplicateAssignment) {
		t.Fatalf("expected ErrDuplicateAssignment, got %v", err)
	}

	if after := slotPlayers(t, f, squadID); !reflect.DeepEqual(before, after) {
		t.Fatalf("expected slots unchanged after rejection")
	}
}

func TestSquadService_UpdateLineup_MovesPlayerBetweenSlots(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)
	ut := memory.SeedPlayerID("ut-01")

	for _, slotID := range []string{"MF_1", "BENCH_2"} {
		if _, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
			SquadID:     squadID,
			UserID:      "user-1",
			Assignments: []squad.Assignment{{SlotID: slotID, PlayerID: &ut}},
		}, f.inventory); err != nil {
			t.Fatalf("assign to %s: %v", slotID, err)
		}
	}

	players := slotPlayers(t, f, squadID)
	if players["MF_1"] != "" {
		t.Fatalf("expected MF_1 vacated, got %s", players["MF_1"])
	}
	if players["BENCH_2"] != ut {
		t.Fatalf("expected BENCH_2 to hold %s, got %s", ut, players["BENCH_2"])
	}
}

func TestSquadService_UpdateLineup_ClearsSlot(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)
	fw := memory.SeedPlayerID("fw-02")

	if _, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID:     squadID,
		UserID:      "user-1",
		Assignments: []squad.Assignment{{SlotID: "FW_1", PlayerID: &fw}},
	}, f.inventory); err != nil {
		t.Fatalf("assign: %v", err)
	}

	got, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID:     squadID,
		UserID:      "user-1",
		Assignments: []squad.Assignment{{SlotID: "FW_1", PlayerID: nil}},
	}, f.inventory)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got.Counters.Filled != 0 {
		t.Fatalf("expected no filled slots, got %+v", got.Counters)
	}
}

func TestSquadService_UpdateLineup_ValidationErrors(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)
	ownsAll := OwnershipCheckFunc(func(context.Context, string, string) (bool, error) { return true, nil })

	tests := []struct {
		name        string
		userID      string
		squadID     string
		assignments []squad.Assignment
		ownership   OwnershipChecker
		target      error
	}{
		{
			name:        "empty assignments",
			userID:      "user-1",
			squadID:     squadID,
			assignments: nil,
			ownership:   f.inventory,
			target:      ErrInvalidInput,
		},
		{
			name:    "slot listed twice",
			userID:  "user-1",
			squadID: squadID,
			assignments: []squad.Assignment{
				{SlotID: "BENCH_1"},
				{SlotID: "BENCH_1"},
			},
			ownership: f.inventory,
			target:    ErrInvalidInput,
		},
		{
			name:        "unknown squad",
			userID:      "user-1",
			squadID:     "nope",
			assignments: []squad.Assignment{{SlotID: "GK_1"}},
			ownership:   f.inventory,
			target:      squad.ErrSquadNotFound,
		},
		{
			name:        "foreign squad",
			userID:      "user-2",
			squadID:     squadID,
			assignments: []squad.Assignment{{SlotID: "GK_1"}},
			ownership:   f.inventory,
			target:      squad.ErrForbidden,
		},
		{
			name:        "unknown slot",
			userID:      "user-1",
			squadID:     squadID,
			assignments: []squad.Assignment{{SlotID: "DF_5", PlayerID: ptr(memory.SeedPlayerID("df-01"))}},
			ownership:   f.inventory,
			target:      squad.ErrSlotNotFound,
		},
		{
			name:        "player not owned",
			userID:      "user-1",
			squadID:     squadID,
			assignments: []squad.Assignment{{SlotID: "FW_1", PlayerID: ptr(memory.SeedPlayerID("fw-04"))}},
			ownership:   f.inventory,
			target:      squad.ErrPlayerNotInInventory,
		},
		{
			name:        "player missing from catalog",
			userID:      "user-1",
			squadID:     squadID,
			assignments: []squad.Assignment{{SlotID: "FW_1", PlayerID: ptr("00000000-0000-0000-0000-000000000000")}},
			ownership:   ownsAll,
			target:      squad.ErrPlayerNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
				SquadID:     tc.squadID,
				UserID:      tc.userID,
				Assignments: tc.assignments,
			}, tc.ownership)
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestSquadService_UpdateLineup_FirstFailureInSubmissionOrder(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)

	_, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID: squadID,
		UserID:  "user-1",
		Assignments: []squad.Assignment{
			{SlotID: "GK_1", PlayerID: ptr(memory.SeedPlayerID("gk-01"))},
			{SlotID: "DF_1", PlayerID: ptr(memory.SeedPlayerID("mf-01"))},
			{SlotID: "FW_1", PlayerID: ptr(memory.SeedPlayerID("fw-04"))},
		},
	}, f.inventory)
	if !errors.Is(err, squad.ErrPositionMismatch) {
		t.Fatalf("expected ErrPositionMismatch from the earlier assignment, got %v", err)
	}

	_, err = f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID: squadID,
		UserID:  "user-1",
		Assignments: []squad.Assignment{
			{SlotID: "FW_1", PlayerID: ptr(memory.SeedPlayerID("fw-04"))},
			{SlotID: "DF_1", PlayerID: ptr(memory.SeedPlayerID("mf-01"))},
		},
	}, f.inventory)
	if !errors.Is(err, squad.ErrPlayerNotInInventory) {
		t.Fatalf("expected ErrPlayerNotInInventory from the earlier assignment, got %v", err)
	}
}

func TestSquadService_UpdateLineup_OwnershipCheckedOncePerPlayer(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)

	var calls atomic.Int32
	counting := OwnershipCheckFunc(func(ctx context.Context, userID, playerID string) (bool, error) {
		calls.Add(1)
		return f.inventory.Owns(ctx, userID, playerID)
	})

	_, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID: squadID,
		UserID:  "user-1",
		Assignments: []squad.Assignment{
			{SlotID: "GK_1", PlayerID: ptr(memory.SeedPlayerID("gk-01"))},
			{SlotID: "BENCH_1"},
			{SlotID: "MF_1", PlayerID: ptr(memory.SeedPlayerID("mf-01"))},
			{SlotID: "FW_1", PlayerID: ptr(memory.SeedPlayerID("fw-01"))},
		},
	}, counting)
	if err != nil {
		t.Fatalf("update lineup: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 ownership checks, got %d", calls.Load())
	}
}

func TestSquadService_UpdateLineup_OwnershipFailurePropagates(t *testing.T) {
	f := newSquadFixture(t)
	squadID := createLineupSquad(t, f)
	boom := errors.New("inventory offline")

	_, err := f.service.UpdateLineup(t.Context(), UpdateLineupInput{
		SquadID:     squadID,
		UserID:      "user-1",
		Assignments: []squad.Assignment{{SlotID: "GK_1", PlayerID: ptr(memory.SeedPlayerID("gk-01"))}},
	}, OwnershipCheckFunc(func(context.Context, string, string) (bool, error) { return false, boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped ownership failure, got %v", err)
	}
	if errors.Is(err, squad.ErrPlayerNotInInventory) {
		t.Fatalf("ownership failure must not be reported as not-in-inventory")
	}
}
