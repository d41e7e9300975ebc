package squad

import (
	"fmt"
	"time"

	"github.com/riskibarqy/football-manager/internal/domain/formation"
)

// Squad is a named roster owned by one user, laid out by a formation.
type Squad struct {
	ID        string
	UserID    string
	Name      string
	Formation formation.ID
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Squad) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("squad name is required")
	}
	if _, ok := formation.Lookup(s.Formation); !ok {
		return &formation.InvalidFormationError{ID: string(s.Formation)}
	}
	return nil
}

// Slot is one position in a squad. PlayerID is empty when unassigned.
type Slot struct {
	SquadID   string
	SlotID    string
	Kind      formation.SlotKind
	PlayerID  string
	UpdatedAt time.Time
}

func (s Slot) Filled() bool {
	return s.PlayerID != ""
}

// Assignment places a player into a slot. A nil PlayerID clears the slot.
type Assignment struct {
	SlotID   string
	PlayerID *string
}

// Aggregate is a squad with its full slot list.
type Aggregate struct {
	Squad Squad
	Slots []Slot
}

// Counters are derived from the slot list and never stored.
type Counters struct {
	Starters int
	Bench    int
	Filled   int
	Empty    int
}

func CountSlots(slots []Slot) Counters {
	var out Counters
	for _, slot := range slots {
		switch slot.Kind {
		case formation.SlotKindStarter:
			out.Starters++
		case formation.SlotKindBench:
			out.Bench++
		}
		if slot.Filled() {
			out.Filled++
		} else {
			out.Empty++
		}
	}
	return out
}

// NewSlots builds the empty slot list for a freshly created squad.
func NewSlots(squadID string, specs []formation.SlotSpec, now time.Time) []Slot {
	out := make([]Slot, 0, len(specs))
	for _, spec := range specs {
		out = append(out, Slot{
			SquadID:   squadID,
			SlotID:    spec.ID,
			Kind:      spec.Kind,
			UpdatedAt: now,
		})
	}
	return out
}
