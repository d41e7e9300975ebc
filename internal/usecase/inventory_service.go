package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-manager/internal/domain/inventory"
	"github.com/riskibarqy/football-manager/internal/domain/player"
)

type InventoryEntry struct {
	Player     PlayerSummary
	AcquiredAt time.Time
}

type InventoryService struct {
	inventoryRepo inventory.Repository
	playerRepo    player.Repository
}

func NewInventoryService(inventoryRepo inventory.Repository, playerRepo player.Repository) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		playerRepo:    playerRepo,
	}
}

// Owns satisfies OwnershipChecker.
func (s *InventoryService) Owns(ctx context.Context, userID, playerID string) (bool, error) {
	userID = strings.TrimSpace(userID)
	playerID = strings.TrimSpace(playerID)
	if userID == "" || playerID == "" {
		return false, nil
	}

	owned, err := s.inventoryRepo.Owns(ctx, userID, playerID)
	if err != nil {
		return false, fmt.Errorf("check inventory ownership: %w", err)
	}
	return owned, nil
}

func (s *InventoryService) ListInventory(ctx context.Context, userID string, includeStats bool) ([]InventoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InventoryService.ListInventory")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.inventoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory by user: %w", err)
	}
	if len(items) == 0 {
		return []InventoryEntry{}, nil
	}

	playerIDs := make([]string, 0, len(items))
	for _, item := range items {
		playerIDs = append(playerIDs, item.PlayerID)
	}
	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	out := make([]InventoryEntry, 0, len(items))
	for _, item := range items {
		p, ok := playerByID[item.PlayerID]
		if !ok {
			continue
		}
		out = append(out, InventoryEntry{
			Player:     *summarizePlayer(p, includeStats),
			AcquiredAt: item.AcquiredAt,
		})
	}

	return out, nil
}
