// Package store persists simulated games.
package store

import (
	"context"
	"errors"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/games"
)

// ErrNotFound is returned when a game id is not stored.
var ErrNotFound = errors.New("game not found")

// Store saves final games and reads them back by id or season.
type Store interface {
	SaveGame(ctx context.Context, g games.Game) error
	GetGame(ctx context.Context, id string) (games.Game, error)
	// ListGames returns a season's games ordered by day, then id.
	ListGames(ctx context.Context, season int) ([]games.Game, error)
	Close() error
}
