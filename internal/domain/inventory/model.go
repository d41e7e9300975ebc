package inventory

import "time"

// Item records that a user owns a catalog player.
type Item struct {
	UserID     string
	PlayerID   string
	AcquiredAt time.Time
}
