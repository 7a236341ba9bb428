package providers

import (
	"context"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
)

// TeamProvider fetches normalized teams. Every team must carry its conference.
type TeamProvider interface {
	FetchTeams(ctx context.Context) ([]teams.Team, error)
}

// PlayerProvider builds rosters for the given teams.
type PlayerProvider interface {
	FetchPlayers(ctx context.Context, ts []teams.Team) ([]players.Player, error)
}

// LeagueProvider supplies everything needed to bootstrap a league.
type LeagueProvider interface {
	TeamProvider
	PlayerProvider
}
