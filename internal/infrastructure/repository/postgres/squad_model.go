package postgres

import (
	"database/sql"
	"time"
)

type squadTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Formation string    `db:"formation"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type squadInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Formation string    `db:"formation"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type squadLockModel struct {
	ID     int64  `db:"id"`
	UserID string `db:"user_id"`
}

type squadSlotTableModel struct {
	SlotID    string         `db:"slot_id"`
	SlotKind  string         `db:"slot_kind"`
	PlayerID  sql.NullString `db:"player_public_id"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type squadSlotInsertModel struct {
	SquadID   int64     `db:"squad_id"`
	SlotID    string    `db:"slot_id"`
	SlotKind  string    `db:"slot_kind"`
	PlayerID  *string   `db:"player_public_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
