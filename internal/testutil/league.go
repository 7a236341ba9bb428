package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/providers/fixture"
)

// LeagueConfig is a short, fast season over the full fixture league.
func LeagueConfig() league.Config {
	return league.Config{
		Seed:         11,
		GamesPerTeam: 4,
		LineupSize:   8,
		Possessions:  60,
		Workers:      4,
		GameTimeout:  5 * time.Second,
		StartYear:    2030,
	}
}

// NewLeague builds a deterministic fixture league with a fixed clock.
func NewLeague(t testing.TB, opts ...league.Option) *league.League {
	t.Helper()
	provider := fixture.New(5, 9)
	ctx := context.Background()
	ts, err := provider.FetchTeams(ctx)
	if err != nil {
		t.Fatalf("fixture teams: %v", err)
	}
	ps, err := provider.FetchPlayers(ctx, ts)
	if err != nil {
		t.Fatalf("fixture players: %v", err)
	}
	opts = append([]league.Option{league.WithClock(NowAt(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))}, opts...)
	l, err := league.New(LeagueConfig(), ts, ps, opts...)
	if err != nil {
		t.Fatalf("new league: %v", err)
	}
	return l
}

// PlayToChampion advances until the season is complete.
func PlayToChampion(t testing.TB, l *league.League) {
	t.Helper()
	for i := 0; i < 500; i++ {
		_, err := l.AdvanceDay(context.Background())
		if errors.Is(err, league.ErrSeasonComplete) {
			return
		}
		if err != nil {
			t.Fatalf("advance day %d: %v", i+1, err)
		}
	}
	t.Fatalf("season did not finish")
}
