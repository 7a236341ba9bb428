// Package autoplay advances the league on a fixed interval.
package autoplay

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/league"
	"github.com/preston-bernstein/nba-sim-service/internal/logging"
	"github.com/preston-bernstein/nba-sim-service/internal/metrics"
)

const (
	defaultInterval = 30 * time.Second
	// readyFailureLimit is how many consecutive failed cycles flip readiness off.
	readyFailureLimit = 3
)

// Advancer is the slice of the league the loop drives.
type Advancer interface {
	AdvanceDay(ctx context.Context) (league.DayReport, error)
	StartNewSeason(ctx context.Context) (league.Status, error)
}

// Runner plays one league day per tick.
type Runner struct {
	league    Advancer
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration
	newSeason bool

	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
	Cycles              int       `json:"cycles"`
}

// IsReady reports whether the loop has had a success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureLimit
}

// New constructs a Runner. When newSeason is set a finished season rolls into the next one.
func New(l Advancer, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, newSeason bool) *Runner {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Runner{
		league:    l,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		newSeason: newSeason,
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Start runs the loop until the context is cancelled or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	r.startMu.Lock()
	if r.started {
		r.startMu.Unlock()
		return
	}
	r.started = true
	r.startMu.Unlock()

	r.ticker = time.NewTicker(r.interval)

	go func() {
		defer close(r.stopped)
		logging.Info(r.logger, "autoplay started", slog.Int64(logging.FieldDurationMS, r.interval.Milliseconds()))
		r.Cycle(ctx)

		for {
			select {
			case <-ctx.Done():
				r.ticker.Stop()
				logging.Info(r.logger, "autoplay stopped")
				return
			case <-r.done:
				r.ticker.Stop()
				logging.Info(r.logger, "autoplay stopped")
				return
			case <-r.ticker.C:
				r.Cycle(ctx)
			}
		}
	}()
}

// Stop halts the loop and waits for an in-flight cycle or ctx, whichever ends first.
func (r *Runner) Stop(ctx context.Context) error {
	r.stopOnce.Do(func() { close(r.done) })

	r.startMu.Lock()
	started := r.started
	r.startMu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-r.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cycle plays one day. A finished season is rolled over when configured.
func (r *Runner) Cycle(ctx context.Context) {
	start := time.Now()
	r.recordAttempt(start)

	report, err := r.league.AdvanceDay(ctx)
	if errors.Is(err, league.ErrSeasonComplete) {
		if !r.newSeason {
			r.metrics.RecordAutoplayCycle(time.Since(start), nil)
			r.recordSuccess(start)
			return
		}
		var st league.Status
		st, err = r.league.StartNewSeason(ctx)
		if err == nil {
			logging.Info(r.logger, "autoplay rolled over season", logging.FieldSeason, st.Season)
		}
	}
	r.metrics.RecordAutoplayCycle(time.Since(start), err)
	if err != nil {
		logging.Error(r.logger, "autoplay cycle failed", err, logging.FieldDurationMS, time.Since(start).Milliseconds())
		r.recordFailure(err)
		return
	}

	r.recordSuccess(start)
	if len(report.Games) > 0 {
		logging.Info(r.logger, "autoplay advanced league",
			logging.FieldSeason, report.Season,
			logging.FieldDay, report.Day,
			logging.FieldCount, len(report.Games),
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}
}

func (r *Runner) recordAttempt(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.LastAttempt = at
	r.status.Cycles++
}

func (r *Runner) recordSuccess(at time.Time) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures = 0
	r.status.LastError = ""
	r.status.LastSuccess = at
}

func (r *Runner) recordFailure(err error) {
	r.statusMu.Lock()
	defer r.statusMu.Unlock()
	r.status.ConsecutiveFailures++
	if err != nil {
		r.status.LastError = err.Error()
	}
}

// Status returns a snapshot of the loop's recent health.
func (r *Runner) Status() Status {
	r.statusMu.RLock()
	defer r.statusMu.RUnlock()
	return r.status
}
