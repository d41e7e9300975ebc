package postgres

import "time"

type playerTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	Rarity    string    `db:"rarity"`
	Overall   int       `db:"overall"`
	Tier      int       `db:"tier"`
	Pace      int       `db:"pace"`
	Shooting  int       `db:"shooting"`
	Passing   int       `db:"passing"`
	Dribbling int       `db:"dribbling"`
	Defending int       `db:"defending"`
	Physical  int       `db:"physical"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	PublicID  string `db:"public_id"`
	Name      string `db:"name"`
	Role      string `db:"role"`
	Rarity    string `db:"rarity"`
	Overall   int    `db:"overall"`
	Tier      int    `db:"tier"`
	Pace      int    `db:"pace"`
	Shooting  int    `db:"shooting"`
	Passing   int    `db:"passing"`
	Dribbling int    `db:"dribbling"`
	Defending int    `db:"defending"`
	Physical  int    `db:"physical"`
}

type inventoryTableModel struct {
	UserID     string    `db:"user_id"`
	PlayerID   string    `db:"player_public_id"`
	AcquiredAt time.Time `db:"acquired_at"`
}
