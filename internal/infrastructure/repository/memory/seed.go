package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/riskibarqy/football-manager/internal/domain/inventory"
	"github.com/riskibarqy/football-manager/internal/domain/player"
)

// DemoUserID owns the whole seed catalog in local runs.
const DemoUserID = "demo-user"

var seedNamespace = uuid.MustParse("7b0f6f4e-3c55-4c1e-9a7c-0d1f0f4a2b11")

// SeedPlayerID returns the stable UUID of a seed catalog player by slug.
func SeedPlayerID(slug string) string {
	return uuid.NewSHA1(seedNamespace, []byte(slug)).String()
}

type seedPlayer struct {
	slug    string
	name    string
	role    player.Role
	rarity  player.Rarity
	overall int
	tier    int
	stats   player.Stats
}

var seedCatalog = []seedPlayer{
	{"gk-01", "Tomas Varga", player.RoleGoalkeeper, player.RarityEpic, 84, 3, player.Stats{Pace: 45, Shooting: 18, Passing: 62, Dribbling: 35, Defending: 82, Physical: 78}},
	{"gk-02", "Ilya Petrov", player.RoleGoalkeeper, player.RarityCommon, 71, 1, player.Stats{Pace: 40, Shooting: 15, Passing: 50, Dribbling: 30, Defending: 70, Physical: 72}},
	{"df-01", "Marco Bellini", player.RoleDefender, player.RarityLegendary, 88, 4, player.Stats{Pace: 72, Shooting: 40, Passing: 70, Dribbling: 60, Defending: 90, Physical: 86}},
	{"df-02", "Sam Okafor", player.RoleDefender, player.RarityRare, 79, 2, player.Stats{Pace: 76, Shooting: 35, Passing: 64, Dribbling: 58, Defending: 80, Physical: 81}},
	{"df-03", "Lucas Moreau", player.RoleDefender, player.RarityCommon, 70, 1, player.Stats{Pace: 68, Shooting: 30, Passing: 58, Dribbling: 52, Defending: 72, Physical: 74}},
	{"df-04", "Jonas Lind", player.RoleDefender, player.RarityRare, 77, 2, player.Stats{Pace: 70, Shooting: 38, Passing: 66, Dribbling: 55, Defending: 79, Physical: 77}},
	{"df-05", "Diego Ruiz", player.RoleDefender, player.RarityCommon, 69, 1, player.Stats{Pace: 74, Shooting: 33, Passing: 60, Dribbling: 57, Defending: 70, Physical: 68}},
	{"mf-01", "Kenji Sato", player.RoleMidfielder, player.RarityEpic, 85, 3, player.Stats{Pace: 78, Shooting: 74, Passing: 88, Dribbling: 84, Defending: 60, Physical: 70}},
	{"mf-02", "Adam Novak", player.RoleMidfielder, player.RarityRare, 78, 2, player.Stats{Pace: 70, Shooting: 68, Passing: 80, Dribbling: 76, Defending: 62, Physical: 72}},
	{"mf-03", "Rui Costa Lima", player.RoleMidfielder, player.RarityCommon, 72, 1, player.Stats{Pace: 66, Shooting: 62, Passing: 74, Dribbling: 70, Defending: 58, Physical: 66}},
	{"mf-04", "Omar Haddad", player.RoleMidfielder, player.RarityCommon, 71, 1, player.Stats{Pace: 69, Shooting: 60, Passing: 72, Dribbling: 71, Defending: 55, Physical: 64}},
	{"fw-01", "Leo Brandt", player.RoleForward, player.RarityLegendary, 90, 4, player.Stats{Pace: 91, Shooting: 92, Passing: 76, Dribbling: 89, Defending: 35, Physical: 78}},
	{"fw-02", "Nico Ferrara", player.RoleForward, player.RarityEpic, 83, 3, player.Stats{Pace: 86, Shooting: 84, Passing: 68, Dribbling: 82, Defending: 30, Physical: 70}},
	{"fw-03", "Ayo Mensah", player.RoleForward, player.RarityRare, 76, 2, player.Stats{Pace: 84, Shooting: 75, Passing: 60, Dribbling: 74, Defending: 28, Physical: 72}},
	{"fw-04", "Pavel Horak", player.RoleForward, player.RarityCommon, 70, 1, player.Stats{Pace: 75, Shooting: 71, Passing: 55, Dribbling: 66, Defending: 25, Physical: 69}},
	{"ut-01", "Alex Quinn", player.RoleUtility, player.RarityRare, 75, 2, player.Stats{Pace: 73, Shooting: 65, Passing: 70, Dribbling: 68, Defending: 66, Physical: 71}},
	{"ut-02", "Victor Hale", player.RoleUtility, player.RarityCommon, 68, 1, player.Stats{Pace: 67, Shooting: 58, Passing: 64, Dribbling: 60, Defending: 62, Physical: 67}},
}

func SeedPlayers() []player.Player {
	out := make([]player.Player, 0, len(seedCatalog))
	for _, item := range seedCatalog {
		out = append(out, player.Player{
			ID:      SeedPlayerID(item.slug),
			Name:    item.name,
			Role:    item.role,
			Rarity:  item.rarity,
			Overall: item.overall,
			Tier:    item.tier,
			Stats:   item.stats,
		})
	}
	return out
}

// SeedInventory grants every catalog player except the reserve forward to userID.
func SeedInventory(userID string, acquiredAt time.Time) []inventory.Item {
	out := make([]inventory.Item, 0, len(seedCatalog))
	for _, item := range seedCatalog {
		if item.slug == "fw-04" {
			continue
		}
		out = append(out, inventory.Item{
			UserID:     userID,
			PlayerID:   SeedPlayerID(item.slug),
			AcquiredAt: acquiredAt,
		})
	}
	return out
}
