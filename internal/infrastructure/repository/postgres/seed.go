package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-manager/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/football-manager/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo catalog and the demo user's inventory into an
// empty database. It is a no-op once any player exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	players := memory.SeedPlayers()
	rows := make([]playerInsertModel, 0, len(players))
	for _, p := range players {
		rows = append(rows, playerInsertModel{
			PublicID:  p.ID,
			Name:      p.Name,
			Role:      string(p.Role),
			Rarity:    string(p.Rarity),
			Overall:   p.Overall,
			Tier:      p.Tier,
			Pace:      p.Stats.Pace,
			Shooting:  p.Stats.Shooting,
			Passing:   p.Stats.Passing,
			Dribbling: p.Stats.Dribbling,
			Defending: p.Stats.Defending,
			Physical:  p.Stats.Physical,
		})
	}
	playerSQL, playerArgs, err := qb.InsertModels("players", "ON CONFLICT (public_id) DO NOTHING", rows...)
	if err != nil {
		return fmt.Errorf("build seed players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, playerSQL, playerArgs...); err != nil {
		return fmt.Errorf("seed players: %w", err)
	}

	items := memory.SeedInventory(memory.DemoUserID, time.Now().UTC())
	inventoryRows := make([]inventoryTableModel, 0, len(items))
	for _, item := range items {
		inventoryRows = append(inventoryRows, inventoryTableModel{
			UserID:     item.UserID,
			PlayerID:   item.PlayerID,
			AcquiredAt: item.AcquiredAt,
		})
	}
	const inventorySQL = `INSERT INTO inventory_items (user_id, player_public_id, acquired_at)
		VALUES (:user_id, :player_public_id, :acquired_at)
		ON CONFLICT (user_id, player_public_id) DO NOTHING`
	if _, err := tx.NamedExecContext(ctx, inventorySQL, inventoryRows); err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
