package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nba-sim-service/internal/autoplay"
	"github.com/preston-bernstein/nba-sim-service/internal/config"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	httpserver "github.com/preston-bernstein/nba-sim-service/internal/http"
	"github.com/preston-bernstein/nba-sim-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-sim-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/live"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
	"github.com/preston-bernstein/nba-sim-service/internal/providers"
	"github.com/preston-bernstein/nba-sim-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	league        *league.League
	store         store.Store
	hub           *live.Hub
	httpServer    httpServer
	metricsServer httpServer
	runner        Runner
	metricsStop   func(context.Context) error
}

// New bootstraps the league from the configured provider and wires the HTTP surface.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil, nil)
}

func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.LeagueProvider) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, provider, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.LeagueProvider, recorder *metrics.Recorder) (*Server, error) {
	seed, err := resolveSeed(cfg.League.Seed)
	if err != nil {
		return nil, err
	}
	cfg.League.Seed = seed

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	fail := func(err error) (*Server, error) {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.League.Provider, provider), 0, 0)
	}

	ts, ps, err := bootstrap(ctx, provider)
	if err != nil {
		return fail(err)
	}

	st, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return fail(fmt.Errorf("open store: %w", err))
	}
	arch := buildArchive(cfg.Archive)
	hub := live.NewHub(logger, recorder, cfg.Live.MaxConnections)

	l, err := league.New(leagueConfig(cfg.League), ts, ps,
		league.WithLogger(logger),
		league.WithMetrics(recorder),
		league.WithStore(st),
		league.WithListener(hub),
		league.WithListener(league.NewArchiveListener(arch.writer, logger)),
	)
	if err != nil {
		_ = st.Close()
		return fail(fmt.Errorf("build league: %w", err))
	}
	logging.Info(logger, "league ready",
		slog.Int(logging.FieldCount, len(ts)),
		slog.Int(logging.FieldSeason, l.Status().Season),
		slog.Int64("seed", seed),
	)

	var runner Runner
	if cfg.Autoplay.Enabled {
		runner = autoplay.New(l, logger, recorder, cfg.Autoplay.Interval, cfg.Autoplay.NewSeason)
	}
	httpSrv := buildHTTPServer(cfg, l, arch, hub, runner, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		league:        l,
		store:         st,
		hub:           hub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		runner:        runner,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, l *league.League, httpSrv httpServer, runner Runner) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		league:     l,
		httpServer: httpSrv,
		runner:     runner,
	}
}

func bootstrap(ctx context.Context, provider providers.LeagueProvider) ([]teams.Team, []players.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	ts, err := provider.FetchTeams(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch teams: %w", err)
	}
	ps, err := provider.FetchPlayers(ctx, ts)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch players: %w", err)
	}
	return ts, ps, nil
}

func leagueConfig(cfg config.LeagueConfig) league.Config {
	return league.Config{
		Seed:         cfg.Seed,
		GamesPerTeam: cfg.GamesPerTeam,
		LineupSize:   cfg.LineupSize,
		Possessions:  cfg.Possessions,
		Workers:      cfg.SimWorkers,
		GameTimeout:  cfg.GameTimeout,
		StartYear:    cfg.SeasonStartYear,

		RegularSeasonOnly: cfg.RegularSeasonOnly,
	}
}

func buildHTTPServer(cfg config.Config, l *league.League, arch archiveComponents, hub *live.Hub, runner Runner, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() autoplay.Status
	if runner != nil {
		statusFn = runner.Status
	}

	routes := httpserver.Routes{
		Handler:    handlers.NewHandler(l, arch.store, logger, statusFn),
		Admin:      handlers.NewAdminHandler(l, logger),
		AdminToken: cfg.AdminToken,
	}
	if hub != nil {
		routes.Live = hub
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, httpserver.NewRouter(routes))

	// Hijacked live connections reset their own deadlines per frame.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the hub, autoplay and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	if s.hub != nil {
		go s.hub.Run(ctx)
	}
	s.startServer(stop)
	if s.runner != nil {
		s.runner.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.runner != nil {
		if err := s.runner.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop autoplay", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			logging.Warn(s.logger, "store close failed", logging.FieldError, err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// League exposes the running league (useful for tests).
func (s *Server) League() *league.League {
	return s.league
}
