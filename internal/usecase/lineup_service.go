package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/football-manager/internal/domain/formation"
	"github.com/riskibarqy/football-manager/internal/domain/player"
	"github.com/riskibarqy/football-manager/internal/domain/squad"
)

// OwnershipChecker answers whether a user holds a player in their inventory.
type OwnershipChecker interface {
	Owns(ctx context.Context, userID, playerID string) (bool, error)
}

// OwnershipCheckFunc adapts a plain function to OwnershipChecker.
type OwnershipCheckFunc func(ctx context.Context, userID, playerID string) (bool, error)

func (f OwnershipCheckFunc) Owns(ctx context.Context, userID, playerID string) (bool, error) {
	return f(ctx, userID, playerID)
}

type UpdateLineupInput struct {
	SquadID     string
	UserID      string
	Assignments []squad.Assignment
}

type ownershipResult struct {
	owned bool
	err   error
}

// UpdateLineup validates every assignment before writing any of them. The
// first failing assignment in submission order decides the returned error.
func (s *SquadService) UpdateLineup(ctx context.Context, input UpdateLineupInput, ownership OwnershipChecker) (SquadDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.UpdateLineup", squadAttrs(input.SquadID, input.UserID)...)
	defer span.End()

	input.SquadID = strings.TrimSpace(input.SquadID)
	input.UserID = strings.TrimSpace(input.UserID)
	if input.SquadID == "" || input.UserID == "" {
		return SquadDetail{}, fmt.Errorf("%w: squad id and user id are required", ErrInvalidInput)
	}
	if ownership == nil {
		return SquadDetail{}, fmt.Errorf("%w: ownership checker is required", ErrInvalidInput)
	}

	assignments, err := cleanAssignments(input.Assignments)
	if err != nil {
		return SquadDetail{}, err
	}

	if _, err := s.loadOwnedSquad(ctx, input.SquadID, input.UserID); err != nil {
		return SquadDetail{}, err
	}

	playerIDs, err := distinctAssignedPlayers(assignments)
	if err != nil {
		return SquadDetail{}, err
	}

	slots, err := s.squadRepo.ListSlots(ctx, input.SquadID)
	if err != nil {
		return SquadDetail{}, fmt.Errorf("list squad slots: %w", err)
	}
	known := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		known[slot.SlotID] = struct{}{}
	}
	for _, a := range assignments {
		if _, ok := known[a.SlotID]; !ok {
			return SquadDetail{}, fmt.Errorf("%w: slot=%s", squad.ErrSlotNotFound, a.SlotID)
		}
	}

	if len(playerIDs) > 0 {
		if err := s.validateAssignedPlayers(ctx, input.UserID, assignments, playerIDs, ownership); err != nil {
			return SquadDetail{}, err
		}
	}

	if err := s.squadRepo.ApplyLineup(ctx, input.UserID, input.SquadID, assignments, s.now().UTC()); err != nil {
		return SquadDetail{}, fmt.Errorf("apply lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup updated",
		"user_id", input.UserID,
		"squad_id", input.SquadID,
		"assignment_count", len(assignments),
		"player_count", len(playerIDs),
	)

	return s.GetSquadByID(ctx, input.SquadID, input.UserID, true)
}

func (s *SquadService) validateAssignedPlayers(
	ctx context.Context,
	userID string,
	assignments []squad.Assignment,
	playerIDs []string,
	ownership OwnershipChecker,
) error {
	owned, err := s.checkOwnership(ctx, userID, assignments, ownership)
	if err != nil {
		return err
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return fmt.Errorf("get players by ids: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	for i, a := range assignments {
		if a.PlayerID == nil {
			continue
		}
		playerID := *a.PlayerID

		if owned[i].err != nil {
			return fmt.Errorf("check ownership player=%s: %w", playerID, owned[i].err)
		}
		if !owned[i].owned {
			return fmt.Errorf("%w: player=%s", squad.ErrPlayerNotInInventory, playerID)
		}
		p, ok := playerByID[playerID]
		if !ok {
			return fmt.Errorf("%w: player=%s", squad.ErrPlayerNotFound, playerID)
		}
		if !formation.IsCompatible(p.Role, a.SlotID) {
			return fmt.Errorf("%w: player=%s role=%s slot=%s", squad.ErrPositionMismatch, playerID, p.Role, a.SlotID)
		}
	}

	return nil
}

// checkOwnership runs one check per non-null assignment on a bounded pool.
// Results are indexed by assignment position.
func (s *SquadService) checkOwnership(
	ctx context.Context,
	userID string,
	assignments []squad.Assignment,
	ownership OwnershipChecker,
) ([]ownershipResult, error) {
	results := make([]ownershipResult, len(assignments))

	workerCount := s.checkWorkers
	if workerCount > len(assignments) {
		workerCount = len(assignments)
	}
	p, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer p.Release()

	var workers sync.WaitGroup
	for i, a := range assignments {
		if a.PlayerID == nil {
			continue
		}
		playerID := *a.PlayerID
		workers.Add(1)
		if err := p.Submit(func() {
			defer workers.Done()
			owned, err := ownership.Owns(ctx, userID, playerID)
			results[i] = ownershipResult{owned: owned, err: err}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit ownership check: %w", err)
		}
	}
	workers.Wait()

	return results, nil
}

func cleanAssignments(in []squad.Assignment) ([]squad.Assignment, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: at least one assignment is required", ErrInvalidInput)
	}
	if len(in) > formation.SlotCount {
		return nil, fmt.Errorf("%w: at most %d assignments are allowed", ErrInvalidInput, formation.SlotCount)
	}

	out := make([]squad.Assignment, 0, len(in))
	seenSlots := make(map[string]struct{}, len(in))
	for _, a := range in {
		slotID := strings.TrimSpace(a.SlotID)
		if slotID == "" {
			return nil, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
		}
		if _, ok := seenSlots[slotID]; ok {
			return nil, fmt.Errorf("%w: slot %s listed more than once", ErrInvalidInput, slotID)
		}
		seenSlots[slotID] = struct{}{}

		cleaned := squad.Assignment{SlotID: slotID}
		if a.PlayerID != nil {
			playerID := strings.TrimSpace(*a.PlayerID)
			if playerID == "" {
				return nil, fmt.Errorf("%w: player id cannot be blank for slot %s", ErrInvalidInput, slotID)
			}
			cleaned.PlayerID = &playerID
		}
		out = append(out, cleaned)
	}

	return out, nil
}

func distinctAssignedPlayers(assignments []squad.Assignment) ([]string, error) {
	out := make([]string, 0, len(assignments))
	seen := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		if a.PlayerID == nil {
			continue
		}
		if _, ok := seen[*a.PlayerID]; ok {
			return nil, fmt.Errorf("%w: player=%s", squad.ErrDuplicateAssignment, *a.PlayerID)
		}
		seen[*a.PlayerID] = struct{}{}
		out = append(out, *a.PlayerID)
	}
	return out, nil
}
