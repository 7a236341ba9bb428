package server

import (
	"log/slog"

	"github.com/preston-bernstein/nba-sim-service/internal/config"
	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
	"github.com/preston-bernstein/nba-sim-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.LeagueProvider {
	base := selectProvider(cfg, f.logger)
	if cfg.League.Provider == config.ProviderBalldontlie {
		// FetchTeams pages upstream and FetchPlayers follows it immediately.
		base = providers.NewRateLimitedProvider(base, balldontlieInterval, f.logger)
	}
	return providers.NewRetryingProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.League.Provider, base), 0, 0)
}
