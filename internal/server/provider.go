package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-sim-service/internal/config"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/providers"
	"github.com/preston-bernstein/nba-sim-service/internal/providers/balldontlie"
	"github.com/preston-bernstein/nba-sim-service/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.LeagueProvider {
	rosters := fixture.New(cfg.League.Seed, cfg.League.RosterSize)
	switch cfg.League.Provider {
	case config.ProviderFixture, "":
		return rosters
	case config.ProviderBalldontlie:
		return balldontlie.NewClient(balldontlie.Config{
			BaseURL: cfg.Balldontlie.BaseURL,
			APIKey:  cfg.Balldontlie.APIKey,
			Rosters: rosters,
		})
	default:
		logging.Warn(logger, "unknown provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.League.Provider))
		return rosters
	}
}
