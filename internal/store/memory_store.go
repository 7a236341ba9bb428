package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/stats"
)

// MemoryStore keeps a thread-safe copy of games in memory.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]games.Game
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]games.Game),
	}
}

// SaveGame stores or replaces a game.
func (s *MemoryStore) SaveGame(ctx context.Context, g games.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = cloneGame(g)
	return nil
}

// GetGame retrieves a game by id.
func (s *MemoryStore) GetGame(ctx context.Context, id string) (games.Game, error) {
	if err := ctx.Err(); err != nil {
		return games.Game{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return games.Game{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneGame(g), nil
}

// ListGames returns copies of a season's games.
func (s *MemoryStore) ListGames(ctx context.Context, season int) ([]games.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]games.Game, 0)
	for _, g := range s.games {
		if g.Meta.Season == season {
			result = append(result, cloneGame(g))
		}
	}
	SortGames(result)
	return result, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// SortGames orders games by day, then id.
func SortGames(gs []games.Game) {
	sort.Slice(gs, func(i, j int) bool {
		if gs[i].Meta.Day != gs[j].Meta.Day {
			return gs[i].Meta.Day < gs[j].Meta.Day
		}
		return gs[i].ID < gs[j].ID
	})
}

func cloneGame(g games.Game) games.Game {
	if g.BoxScore == nil {
		return g
	}
	box := make(map[string]stats.PlayerGameStats, len(g.BoxScore))
	for id, line := range g.BoxScore {
		box[id] = line
	}
	g.BoxScore = box
	return g
}
