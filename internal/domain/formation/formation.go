package formation

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-manager/internal/domain/player"
)

// ID identifies one of the supported tactical formations.
type ID string

const (
	ID433 ID = "4-3-3"
	ID424 ID = "4-2-4"
	ID532 ID = "5-3-2"
	ID352 ID = "3-5-2"
	ID442 ID = "4-4-2"
)

const (
	StarterCount = 11
	BenchSize    = 7
	SlotCount    = StarterCount + BenchSize
)

var ErrInvalidFormation = errors.New("invalid formation")

// InvalidFormationError carries the identifier that failed lookup.
type InvalidFormationError struct {
	ID string
}

func (e *InvalidFormationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidFormation.Error(), e.ID)
}

func (e *InvalidFormationError) Is(target error) bool {
	return target == ErrInvalidFormation
}

// Formation maps starter roles to counts. Bench size is constant.
type Formation struct {
	ID       ID
	Starters map[player.Role]int
	Bench    int
}

// starterRoles is the order in which starter slots are emitted.
var starterRoles = [...]player.Role{
	player.RoleGoalkeeper,
	player.RoleDefender,
	player.RoleMidfielder,
	player.RoleForward,
}

type catalog struct {
	order []ID
	items map[ID]Formation
}

var defaultCatalog = newCatalog([]Formation{
	outfield(ID433, 4, 3, 3),
	outfield(ID424, 4, 2, 4),
	outfield(ID532, 5, 3, 2),
	outfield(ID352, 3, 5, 2),
	outfield(ID442, 4, 4, 2),
})

func outfield(id ID, df, mf, fw int) Formation {
	return Formation{
		ID: id,
		Starters: map[player.Role]int{
			player.RoleGoalkeeper: 1,
			player.RoleDefender:   df,
			player.RoleMidfielder: mf,
			player.RoleForward:    fw,
		},
		Bench: BenchSize,
	}
}

func newCatalog(items []Formation) catalog {
	out := catalog{
		order: make([]ID, 0, len(items)),
		items: make(map[ID]Formation, len(items)),
	}
	for _, item := range items {
		total := 0
		for _, count := range item.Starters {
			total += count
		}
		if total != StarterCount || item.Bench != BenchSize || item.Starters[player.RoleGoalkeeper] != 1 {
			panic(fmt.Sprintf("formation %s is malformed", item.ID))
		}
		out.order = append(out.order, item.ID)
		out.items[item.ID] = item
	}
	return out
}

// Lookup returns a copy of the formation so callers cannot mutate the catalog.
func Lookup(id ID) (Formation, bool) {
	item, ok := defaultCatalog.items[id]
	if !ok {
		return Formation{}, false
	}
	return item.clone(), true
}

// IDs lists supported formations in catalog order.
func IDs() []ID {
	out := make([]ID, len(defaultCatalog.order))
	copy(out, defaultCatalog.order)
	return out
}

// All lists every formation in catalog order.
func All() []Formation {
	out := make([]Formation, 0, len(defaultCatalog.order))
	for _, id := range defaultCatalog.order {
		out = append(out, defaultCatalog.items[id].clone())
	}
	return out
}

func ParseID(raw string) (ID, error) {
	id := ID(strings.TrimSpace(raw))
	if _, ok := defaultCatalog.items[id]; !ok {
		return "", &InvalidFormationError{ID: raw}
	}
	return id, nil
}

func (f Formation) clone() Formation {
	starters := make(map[player.Role]int, len(f.Starters))
	for role, count := range f.Starters {
		starters[role] = count
	}
	f.Starters = starters
	return f
}
