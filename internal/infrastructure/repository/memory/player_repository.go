package memory

import (
	"context"

	"github.com/riskibarqy/football-manager/internal/domain/player"
)

// PlayerRepository serves a fixed catalog. It is never written after
// construction, so lookups take no lock.
type PlayerRepository struct {
	byID map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return &PlayerRepository{byID: byID}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	p, ok := r.byID[playerID]
	return p, ok, nil
}

// GetByIDs returns known players in request order. Unknown ids are skipped.
func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
