package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 30 * time.Second
)

// retryingProvider wraps a LeagueProvider with exponential backoff and attempt metrics.
type retryingProvider struct {
	inner       LeagueProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	name        string
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/initial are <= 0, defaults are used.
// Rate limit errors with a Retry-After wait at least that long; without one they are not retried.
func NewRetryingProvider(inner LeagueProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, initial time.Duration) LeagueProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		metrics:     recorder,
		name:        name,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

func (r *retryingProvider) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	var out []teams.Team
	err := r.do(ctx, "fetch teams", func() error {
		ts, err := r.inner.FetchTeams(ctx)
		out = ts
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *retryingProvider) FetchPlayers(ctx context.Context, ts []teams.Team) ([]players.Player, error) {
	var out []players.Player
	err := r.do(ctx, "fetch players", func() error {
		ps, err := r.inner.FetchPlayers(ctx, ts)
		out = ps
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *retryingProvider) do(ctx context.Context, op string, fn func() error) error {
	if r.inner == nil {
		return ErrProviderUnavailable
	}
	policy := &retryAfterBackOff{BackOff: r.newBackOff()}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	operation := func() error {
		attempt++
		start := time.Now()
		err := fn()
		r.metrics.RecordProviderAttempt(r.name, time.Since(start), err)
		if err == nil {
			return nil
		}
		if rl, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.name, rl.RetryAfter)
			policy.retryAfter = rl.RetryAfter
		}
		if permanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider "+op+" retry",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"wait_ms", wait.Milliseconds(),
			"err", err,
		)
	}

	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.name, "provider "+op+" failed", "attempts", attempt, "err", err)
		return err
	}
	return nil
}

// retryAfterBackOff stretches the next wait to an upstream Retry-After hint.
type retryAfterBackOff struct {
	backoff.BackOff
	retryAfter time.Duration
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next != backoff.Stop && b.retryAfter > next {
		next = b.retryAfter
	}
	b.retryAfter = 0
	return next
}
