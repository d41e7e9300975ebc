package postgres

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-manager/internal/domain/formation"
	"github.com/riskibarqy/football-manager/internal/domain/squad"
	qb "github.com/riskibarqy/football-manager/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

var squadSelectColumns = []string{
	"id",
	"public_id",
	"user_id",
	"name",
	"formation",
	"is_active",
	"created_at",
	"updated_at",
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (squad.Squad, bool, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("squads").
		Where(qb.Eq("public_id", squadID)).
		ToSQL()
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("build select squad by id query: %w", err)
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squad.Squad{}, false, nil
		}
		return squad.Squad{}, false, fmt.Errorf("get squad by id: %w", err)
	}

	return squadFromRow(row), true, nil
}

func (r *SquadRepository) ListByUser(ctx context.Context, userID string) ([]squad.Squad, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("squads").
		Where(qb.Eq("user_id", userID)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select squads by user query: %w", err)
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select squads by user: %w", err)
	}

	out := make([]squad.Squad, 0, len(rows))
	for _, row := range rows {
		out = append(out, squadFromRow(row))
	}
	return out, nil
}

func (r *SquadRepository) ExistsByUserAndName(ctx context.Context, userID, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM squads WHERE user_id = $1 AND name = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, name); err != nil {
		return false, fmt.Errorf("check squad name exists: %w", err)
	}
	return exists, nil
}

func (r *SquadRepository) ListSlots(ctx context.Context, squadID string) ([]squad.Slot, error) {
	query, args, err := qb.Select(
		"sl.slot_id",
		"sl.slot_kind",
		"sl.player_public_id::text AS player_public_id",
		"sl.updated_at",
	).
		From("squad_slots sl JOIN squads sq ON sq.id = sl.squad_id").
		Where(qb.Eq("sq.public_id", squadID)).
		OrderBy("sl.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select squad slots query: %w", err)
	}

	var rows []squadSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select squad slots: %w", err)
	}

	out := make([]squad.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, squad.Slot{
			SquadID:   squadID,
			SlotID:    row.SlotID,
			Kind:      formation.SlotKind(row.SlotKind),
			PlayerID:  nullStringValue(row.PlayerID),
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}

func (r *SquadRepository) Create(ctx context.Context, item squad.Squad, slots []squad.Slot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for squad create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if item.IsActive {
		if err := deactivateUserSquads(ctx, tx, item.UserID, item.CreatedAt); err != nil {
			return err
		}
	}

	insertSQL, insertArgs, err := qb.InsertModels("squads", "RETURNING id", squadInsertModel{
		PublicID:  item.ID,
		UserID:    item.UserID,
		Name:      item.Name,
		Formation: string(item.Formation),
		IsActive:  item.IsActive,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("build insert squad query: %w", err)
	}

	var internalID int64
	if err := tx.GetContext(ctx, &internalID, insertSQL, insertArgs...); err != nil {
		return mapSquadWriteError(fmt.Errorf("insert squad: %w", err))
	}

	if len(slots) > 0 {
		rows := make([]squadSlotInsertModel, 0, len(slots))
		for _, slot := range slots {
			rows = append(rows, squadSlotInsertModel{
				SquadID:   internalID,
				SlotID:    slot.SlotID,
				SlotKind:  string(slot.Kind),
				PlayerID:  nullablePlayerID(slot.PlayerID),
				CreatedAt: slot.UpdatedAt,
				UpdatedAt: slot.UpdatedAt,
			})
		}
		slotSQL, slotArgs, err := qb.InsertModels("squad_slots", "", rows...)
		if err != nil {
			return fmt.Errorf("build insert squad slots query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, slotSQL, slotArgs...); err != nil {
			return fmt.Errorf("insert squad slots: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return mapSquadWriteError(fmt.Errorf("commit squad create tx: %w", err))
	}
	return nil
}

func (r *SquadRepository) Activate(ctx context.Context, userID, squadID string, at time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for squad activate: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	locked, err := lockOwnedSquad(ctx, tx, userID, squadID)
	if err != nil {
		return err
	}
	if err := deactivateUserSquads(ctx, tx, userID, at); err != nil {
		return err
	}

	query, args, err := qb.Update("squads").
		Set("is_active", true).
		Set("updated_at", at).
		Where(qb.Eq("id", locked.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build activate squad query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return mapSquadWriteError(fmt.Errorf("activate squad: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit squad activate tx: %w", err)
	}
	return nil
}

// Delete removes the squad row. Slots go with it through ON DELETE CASCADE.
func (r *SquadRepository) Delete(ctx context.Context, userID, squadID string) error {
	query, args, err := qb.DeleteFrom("squads").
		Where(qb.Eq("public_id", squadID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete squad query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete squad: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete squad rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: squad=%s", squad.ErrSquadNotFound, squadID)
	}
	return nil
}

// ApplyLineup holds a row lock on the squad for the whole transaction so
// concurrent lineup writes to the same squad run one after another.
func (r *SquadRepository) ApplyLineup(ctx context.Context, userID, squadID string, assignments []squad.Assignment, at time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for lineup update: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	locked, err := lockOwnedSquad(ctx, tx, userID, squadID)
	if err != nil {
		return err
	}

	slotQuery, slotArgs, err := qb.Select("slot_id").From("squad_slots").
		Where(qb.Eq("squad_id", locked.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select slot ids query: %w", err)
	}
	var slotIDs []string
	if err := tx.SelectContext(ctx, &slotIDs, slotQuery, slotArgs...); err != nil {
		return fmt.Errorf("select slot ids: %w", err)
	}
	known := make(map[string]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		known[id] = struct{}{}
	}

	incoming := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if _, ok := known[a.SlotID]; !ok {
			return fmt.Errorf("%w: slot=%s", squad.ErrSlotNotFound, a.SlotID)
		}
		if a.PlayerID != nil {
			incoming = append(incoming, *a.PlayerID)
		}
	}

	if len(incoming) > 0 {
		vacateSQL, vacateArgs, err := qb.Update("squad_slots").
			Set("player_public_id", nil).
			Set("updated_at", at).
			Where(
				qb.Eq("squad_id", locked.ID),
				qb.InStrings("player_public_id", incoming),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build vacate slots query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, vacateSQL, vacateArgs...); err != nil {
			return fmt.Errorf("vacate slots for incoming players: %w", err)
		}
	}

	for _, a := range assignments {
		setSQL, setArgs, err := qb.Update("squad_slots").
			Set("player_public_id", a.PlayerID).
			Set("updated_at", at).
			Where(
				qb.Eq("squad_id", locked.ID),
				qb.Eq("slot_id", a.SlotID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build assign slot %s query: %w", a.SlotID, err)
		}
		if _, err := tx.ExecContext(ctx, setSQL, setArgs...); err != nil {
			return mapSquadWriteError(fmt.Errorf("assign slot %s: %w", a.SlotID, err))
		}
	}

	touchSQL, touchArgs, err := qb.Update("squads").
		Set("updated_at", at).
		Where(qb.Eq("id", locked.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build touch squad query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, touchSQL, touchArgs...); err != nil {
		return fmt.Errorf("touch squad updated_at: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lineup tx: %w", err)
	}
	return nil
}

func lockOwnedSquad(ctx context.Context, tx *sqlx.Tx, userID, squadID string) (squadLockModel, error) {
	query, args, err := qb.Select("id", "user_id").From("squads").
		Where(qb.Eq("public_id", squadID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return squadLockModel{}, fmt.Errorf("build lock squad query: %w", err)
	}

	var row squadLockModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squadLockModel{}, fmt.Errorf("%w: squad=%s", squad.ErrSquadNotFound, squadID)
		}
		return squadLockModel{}, fmt.Errorf("lock squad: %w", err)
	}
	if row.UserID != userID {
		return squadLockModel{}, fmt.Errorf("%w: squad=%s", squad.ErrForbidden, squadID)
	}
	return row, nil
}

// deactivateUserSquads clears the user's active flag. It first takes a
// transaction-scoped advisory lock on the user, so concurrent activations run
// one after another instead of racing on squads_one_active_per_user.
func deactivateUserSquads(ctx context.Context, tx *sqlx.Tx, userID string, at time.Time) error {
	if _, err := tx.ExecContext(ctx, lockUserActivationSQL, activationLockKey(userID)); err != nil {
		return fmt.Errorf("lock user activation: %w", err)
	}

	query, args, err := qb.Update("squads").
		Set("is_active", false).
		Set("updated_at", at).
		Where(qb.Eq("user_id", userID), qb.Eq("is_active", true)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate squads query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate user squads: %w", err)
	}
	return nil
}

const lockUserActivationSQL = "SELECT pg_advisory_xact_lock(hashtext($1))"

func activationLockKey(userID string) string {
	return "squads:active:" + userID
}

// mapSquadWriteError turns known unique violations into domain errors. The
// driver error is kept as a secondary cause: it shows up in %+v for logs but
// not in Error(), which may reach clients.
func mapSquadWriteError(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case constraintSquadUserName:
		return crerr.WithSecondaryError(squad.ErrSquadNameExists, err)
	case constraintSquadSlotPlayer:
		return crerr.WithSecondaryError(squad.ErrDuplicateAssignment, err)
	default:
		return err
	}
}

func nullablePlayerID(playerID string) *string {
	if playerID == "" {
		return nil
	}
	return &playerID
}

func squadFromRow(row squadTableModel) squad.Squad {
	return squad.Squad{
		ID:        row.PublicID,
		UserID:    row.UserID,
		Name:      row.Name,
		Formation: formation.ID(row.Formation),
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
