package player

import "fmt"

// Role is the positional category a catalog player can fill.
type Role string

const (
	RoleGoalkeeper Role = "GK"
	RoleDefender   Role = "DF"
	RoleMidfielder Role = "MF"
	RoleForward    Role = "FW"
	RoleUtility    Role = "UT"
)

var AllRoles = map[Role]struct{}{
	RoleGoalkeeper: {},
	RoleDefender:   {},
	RoleMidfielder: {},
	RoleForward:    {},
	RoleUtility:    {},
}

func (r Role) Valid() bool {
	_, ok := AllRoles[r]
	return ok
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var AllRarities = map[Rarity]struct{}{
	RarityCommon:    {},
	RarityRare:      {},
	RarityEpic:      {},
	RarityLegendary: {},
}

// Stats holds the six skill ratings, each 0..100.
type Stats struct {
	Pace      int
	Shooting  int
	Passing   int
	Dribbling int
	Defending int
	Physical  int
}

// Player is a catalog entry that users collect into their inventory.
type Player struct {
	ID      string
	Name    string
	Role    Role
	Rarity  Rarity
	Overall int
	Tier    int
	Stats   Stats
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.Role.Valid() {
		return fmt.Errorf("invalid player role: %s", p.Role)
	}
	if _, ok := AllRarities[p.Rarity]; !ok {
		return fmt.Errorf("invalid player rarity: %s", p.Rarity)
	}
	if p.Overall < 0 || p.Overall > 100 {
		return fmt.Errorf("player overall must be within 0..100")
	}
	if p.Tier < 1 {
		return fmt.Errorf("player tier must be >= 1")
	}
	for name, v := range map[string]int{
		"pace":      p.Stats.Pace,
		"shooting":  p.Stats.Shooting,
		"passing":   p.Stats.Passing,
		"dribbling": p.Stats.Dribbling,
		"defending": p.Stats.Defending,
		"physical":  p.Stats.Physical,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("player %s must be within 0..100", name)
		}
	}

	return nil
}
