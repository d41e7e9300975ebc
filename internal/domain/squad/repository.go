package squad

import (
	"context"
	"time"
)

// Repository describes squad persistence needs from use cases.
//
// Create, Activate, Delete and ApplyLineup are each atomic. ApplyLineup locks
// the squad, re-checks ownership and slot existence, clears every slot that
// currently holds one of the incoming players, then writes the assignments.
type Repository interface {
	GetByID(ctx context.Context, squadID string) (Squad, bool, error)
	ListByUser(ctx context.Context, userID string) ([]Squad, error)
	ExistsByUserAndName(ctx context.Context, userID, name string) (bool, error)
	ListSlots(ctx context.Context, squadID string) ([]Slot, error)
	Create(ctx context.Context, squad Squad, slots []Slot) error
	Activate(ctx context.Context, userID, squadID string, at time.Time) error
	Delete(ctx context.Context, userID, squadID string) error
	ApplyLineup(ctx context.Context, userID, squadID string, assignments []Assignment, at time.Time) error
}
