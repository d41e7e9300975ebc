package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/football-manager/internal/domain/inventory"
)

type InventoryRepository struct {
	mu     sync.RWMutex
	byUser map[string]map[string]inventory.Item
}

func NewInventoryRepository(items []inventory.Item) *InventoryRepository {
	r := &InventoryRepository{byUser: make(map[string]map[string]inventory.Item)}
	for _, item := range items {
		r.addLocked(item)
	}
	return r
}

func (r *InventoryRepository) Add(_ context.Context, item inventory.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.addLocked(item)
	return nil
}

func (r *InventoryRepository) Owns(_ context.Context, userID, playerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byUser[userID][playerID]
	return ok, nil
}

func (r *InventoryRepository) ListByUser(_ context.Context, userID string) ([]inventory.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byUser[userID]
	out := make([]inventory.Item, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AcquiredAt.Equal(out[j].AcquiredAt) {
			return out[i].AcquiredAt.Before(out[j].AcquiredAt)
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

func (r *InventoryRepository) addLocked(item inventory.Item) {
	if _, ok := r.byUser[item.UserID]; !ok {
		r.byUser[item.UserID] = make(map[string]inventory.Item)
	}
	r.byUser[item.UserID][item.PlayerID] = item
}
