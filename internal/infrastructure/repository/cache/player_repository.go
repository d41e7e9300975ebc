package cache

import (
	"context"

	"github.com/riskibarqy/football-manager/internal/domain/player"
	basecache "github.com/riskibarqy/football-manager/internal/platform/cache"
)

// PlayerEntry is one cached catalog lookup; misses are cached too.
type PlayerEntry struct {
	value  player.Player
	exists bool
}

// PlayerRepository fronts the player catalog with a TTL cache. The catalog is
// read-only at runtime so nothing here invalidates.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[PlayerEntry]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[PlayerEntry]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	cached, err := r.cache.GetOrLoad(ctx, playerKey(playerID), func(ctx context.Context) (PlayerEntry, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return PlayerEntry{}, err
		}
		return PlayerEntry{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.value, cached.exists, nil
}

// GetByIDs serves hits from the cache and loads every miss in one call to the
// wrapped repository. Output follows the order of playerIDs.
func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(playerIDs))
	found := make(map[string]PlayerEntry, len(playerIDs))
	misses := make([]string, 0, len(playerIDs))

	for _, id := range playerIDs {
		if _, seen := found[id]; seen {
			continue
		}
		if cached, ok := r.cache.Get(ctx, playerKey(id)); ok {
			found[id] = cached
			continue
		}
		found[id] = PlayerEntry{}
		misses = append(misses, id)
	}

	if len(misses) > 0 {
		loaded, err := r.next.GetByIDs(ctx, misses)
		if err != nil {
			return nil, err
		}
		for _, item := range loaded {
			found[item.ID] = PlayerEntry{value: item, exists: true}
		}
		for _, id := range misses {
			r.cache.Set(ctx, playerKey(id), found[id])
		}
	}

	emitted := make(map[string]struct{}, len(found))
	for _, id := range playerIDs {
		entry := found[id]
		if !entry.exists {
			continue
		}
		if _, dup := emitted[id]; dup {
			continue
		}
		emitted[id] = struct{}{}
		out = append(out, entry.value)
	}
	return out, nil
}

func playerKey(playerID string) string {
	return "player:id:" + playerID
}
