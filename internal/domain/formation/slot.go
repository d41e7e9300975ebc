package formation

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/football-manager/internal/domain/player"
)

type SlotKind string

const (
	SlotKindStarter SlotKind = "starter"
	SlotKindBench   SlotKind = "bench"
)

const benchPrefix = "BENCH"

// SlotSpec is one generated position in a squad layout.
type SlotSpec struct {
	ID   string
	Kind SlotKind
}

// GenerateSlots returns starters in GK, DF, MF, FW order followed by BENCH_1..BENCH_7.
func GenerateSlots(id ID) ([]SlotSpec, error) {
	f, ok := defaultCatalog.items[id]
	if !ok {
		return nil, &InvalidFormationError{ID: string(id)}
	}

	out := make([]SlotSpec, 0, SlotCount)
	for _, role := range starterRoles {
		for i := 1; i <= f.Starters[role]; i++ {
			out = append(out, SlotSpec{ID: slotID(string(role), i), Kind: SlotKindStarter})
		}
	}
	for i := 1; i <= f.Bench; i++ {
		out = append(out, SlotSpec{ID: slotID(benchPrefix, i), Kind: SlotKindBench})
	}
	return out, nil
}

func slotID(prefix string, n int) string {
	return prefix + "_" + strconv.Itoa(n)
}

// SlotRole parses a slot id into the role it requires and its kind.
// Bench slots report RoleUtility since any role may sit there.
func SlotRole(slotID string) (player.Role, SlotKind, bool) {
	prefix, number, ok := strings.Cut(slotID, "_")
	if !ok || prefix == "" {
		return "", "", false
	}
	n, err := strconv.Atoi(number)
	if err != nil || n < 1 {
		return "", "", false
	}
	if prefix == benchPrefix {
		return player.RoleUtility, SlotKindBench, true
	}
	role := player.Role(prefix)
	if !role.Valid() || role == player.RoleUtility {
		return "", "", false
	}
	return role, SlotKindStarter, true
}

// ValidSlotID reports whether s is a well formed starter or bench slot id.
func ValidSlotID(s string) bool {
	_, _, ok := SlotRole(s)
	return ok
}

// LessSlotID orders starters before bench, then by role order, then numerically.
func LessSlotID(a, b string) bool {
	ra, na := slotRank(a)
	rb, nb := slotRank(b)
	if ra != rb {
		return ra < rb
	}
	if na != nb {
		return na < nb
	}
	return a < b
}

func slotRank(id string) (int, int) {
	prefix, number, _ := strings.Cut(id, "_")
	n, err := strconv.Atoi(number)
	if err != nil {
		n = 0
	}
	for i, role := range starterRoles {
		if prefix == string(role) {
			return i, n
		}
	}
	if prefix == benchPrefix {
		return len(starterRoles), n
	}
	return len(starterRoles) + 1, n
}
