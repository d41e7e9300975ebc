package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/football-manager/internal/domain/squad"
)

type SquadRepository struct {
	mu     sync.RWMutex
	squads map[string]squad.Squad
	slots  map[string][]squad.Slot
}

func NewSquadRepository() *SquadRepository {
	return &SquadRepository{
		squads: make(map[string]squad.Squad),
		slots:  make(map[string][]squad.Slot),
	}
}

func (r *SquadRepository) GetByID(_ context.Context, squadID string) (squad.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.squads[squadID]
	if !ok {
		return squad.Squad{}, false, nil
	}
	return item, true, nil
}

func (r *SquadRepository) ListByUser(_ context.Context, userID string) ([]squad.Squad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]squad.Squad, 0)
	for _, item := range r.squads {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SquadRepository) ExistsByUserAndName(_ context.Context, userID, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.nameTakenLocked(userID, name), nil
}

func (r *SquadRepository) ListSlots(_ context.Context, squadID string) ([]squad.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneSlots(r.slots[squadID]), nil
}

func (r *SquadRepository) Create(_ context.Context, item squad.Squad, slots []squad.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.squads[item.ID]; ok {
		return fmt.Errorf("squad id %s already exists", item.ID)
	}
	if r.nameTakenLocked(item.UserID, item.Name) {
		return fmt.Errorf("%w: name=%s", squad.ErrSquadNameExists, item.Name)
	}

	if item.IsActive {
		r.deactivateLocked(item.UserID, item.CreatedAt)
	}
	r.squads[item.ID] = item
	r.slots[item.ID] = cloneSlots(slots)
	return nil
}

func (r *SquadRepository) Activate(_ context.Context, userID, squadID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.ownedLocked(userID, squadID)
	if err != nil {
		return err
	}

	r.deactivateLocked(userID, at)
	item.IsActive = true
	item.UpdatedAt = at
	r.squads[squadID] = item
	return nil
}

func (r *SquadRepository) Delete(_ context.Context, userID, squadID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.ownedLocked(userID, squadID); err != nil {
		return err
	}
	delete(r.squads, squadID)
	delete(r.slots, squadID)
	return nil
}

func (r *SquadRepository) ApplyLineup(_ context.Context, userID, squadID string, assignments []squad.Assignment, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.ownedLocked(userID, squadID)
	if err != nil {
		return err
	}

	current := r.slots[squadID]
	indexBySlot := make(map[string]int, len(current))
	for i, slot := range current {
		indexBySlot[slot.SlotID] = i
	}

	incoming := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		if _, ok := indexBySlot[a.SlotID]; !ok {
			return fmt.Errorf("%w: slot=%s", squad.ErrSlotNotFound, a.SlotID)
		}
		if a.PlayerID != nil {
			incoming[*a.PlayerID] = struct{}{}
		}
	}

	next := cloneSlots(current)
	for i, slot := range next {
		if _, moving := incoming[slot.PlayerID]; moving && slot.Filled() {
			next[i].PlayerID = ""
			next[i].UpdatedAt = at
		}
	}
	for _, a := range assignments {
		i := indexBySlot[a.SlotID]
		next[i].PlayerID = ""
		if a.PlayerID != nil {
			next[i].PlayerID = *a.PlayerID
		}
		next[i].UpdatedAt = at
	}

	item.UpdatedAt = at
	r.squads[squadID] = item
	r.slots[squadID] = next
	return nil
}

func (r *SquadRepository) ownedLocked(userID, squadID string) (squad.Squad, error) {
	item, ok := r.squads[squadID]
	if !ok {
		return squad.Squad{}, fmt.Errorf("%w: squad=%s", squad.ErrSquadNotFound, squadID)
	}
	if item.UserID != userID {
		return squad.Squad{}, fmt.Errorf("%w: squad=%s", squad.ErrForbidden, squadID)
	}
	return item, nil
}

func (r *SquadRepository) nameTakenLocked(userID, name string) bool {
	for _, item := range r.squads {
		if item.UserID == userID && item.Name == name {
			return true
		}
	}
	return false
}

func (r *SquadRepository) deactivateLocked(userID string, at time.Time) {
	for id, item := range r.squads {
		if item.UserID != userID || !item.IsActive {
			continue
		}
		item.IsActive = false
		item.UpdatedAt = at
		r.squads[id] = item
	}
}

func cloneSlots(in []squad.Slot) []squad.Slot {
	return append([]squad.Slot(nil), in...)
}
