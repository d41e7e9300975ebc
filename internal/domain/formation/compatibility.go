package formation

import (
	"strings"

	"github.com/riskibarqy/football-manager/internal/domain/player"
)

// IsCompatible reports whether a player of the given role may fill slotID.
// Utility players and bench slots accept anything. Otherwise the slot prefix
// before the first underscore must equal the role exactly.
func IsCompatible(role player.Role, slotID string) bool {
	if role == player.RoleUtility {
		return true
	}
	if strings.HasPrefix(slotID, benchPrefix+"_") {
		return true
	}
	prefix, _, ok := strings.Cut(slotID, "_")
	if !ok || !role.Valid() {
		return false
	}
	return prefix == string(role)
}
