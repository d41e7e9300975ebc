package squad

import "github.com/cockroachdb/errors"

var (
	ErrSquadNameExists      = errors.New("squad name already exists")
	ErrSquadNotFound        = errors.New("squad not found")
	ErrForbidden            = errors.New("squad belongs to another user")
	ErrPlayerNotInInventory = errors.New("player not in inventory")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrPositionMismatch     = errors.New("player role does not fit slot")
	ErrDuplicateAssignment  = errors.New("player assigned more than once")
	ErrSlotNotFound         = errors.New("slot not found in squad")
)
