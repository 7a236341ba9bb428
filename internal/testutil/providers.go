package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-sim-service/internal/providers"
)

// GoodProvider returns the provided teams and players and counts calls.
type GoodProvider struct {
	Teams   []teams.Team
	Players []players.Player
	Calls   atomic.Int32
}

func (p *GoodProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	p.Calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.Teams, nil
}

func (p *GoodProvider) FetchPlayers(ctx context.Context, ts []teams.Team) ([]players.Player, error) {
	p.Calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.Players, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchTeams(context.Context) ([]teams.Team, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchPlayers(context.Context, []teams.Team) ([]players.Player, error) {
	return nil, p.Err
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchTeams(context.Context) ([]teams.Team, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchPlayers(context.Context, []teams.Team) ([]players.Player, error) {
	return nil, providers.ErrProviderUnavailable
}
