package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-manager/internal/domain/inventory"
	qb "github.com/riskibarqy/football-manager/internal/platform/querybuilder"
)

type InventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Owns(ctx context.Context, userID, playerID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM inventory_items WHERE user_id = $1 AND player_public_id = $2)`

	var owned bool
	if err := r.db.GetContext(ctx, &owned, query, userID, playerID); err != nil {
		return false, fmt.Errorf("check inventory item: %w", err)
	}
	return owned, nil
}

func (r *InventoryRepository) ListByUser(ctx context.Context, userID string) ([]inventory.Item, error) {
	query, args, err := qb.Select("user_id", "player_public_id::text AS player_public_id", "acquired_at").
		From("inventory_items").
		Where(qb.Eq("user_id", userID)).
		OrderBy("acquired_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select inventory query: %w", err)
	}

	var rows []inventoryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select inventory by user: %w", err)
	}

	out := make([]inventory.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, inventory.Item{
			UserID:     row.UserID,
			PlayerID:   row.PlayerID,
			AcquiredAt: row.AcquiredAt,
		})
	}
	return out, nil
}
