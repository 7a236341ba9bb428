package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type simStats struct {
	games       map[string]int
	possessions int
	series      map[string]int
	autoplay    int
	autoplayErr int
	liveClients int
	broadcasts  int
}

// Recorder captures in-memory counters and forwards them to OTel instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	sim   simStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		sim: simStats{
			games:  make(map[string]int),
			series: make(map[string]int),
		},
		otel: otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.statsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.statsLocked(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(provider)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordGameSimulated tracks one finished game of the given kind.
func (r *Recorder) RecordGameSimulated(kind string, possessions int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.games[kind]++
	r.sim.possessions += possessions
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordGame(kind, possessions, duration)
	}
}

// RecordSeriesCompleted tracks a clinched playoff series.
func (r *Recorder) RecordSeriesCompleted(round string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.series[round]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSeries(round)
	}
}

// RecordAutoplayCycle tracks autoplay cycles and errors.
func (r *Recorder) RecordAutoplayCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.autoplay++
	if err != nil {
		r.sim.autoplayErr++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordAutoplay(duration, err)
	}
}

// RecordLiveClient adjusts the connected live client gauge by delta.
func (r *Recorder) RecordLiveClient(delta int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.liveClients += delta
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordLiveClient(delta)
	}
}

// RecordLiveBroadcast tracks one message fanned out to a topic.
func (r *Recorder) RecordLiveBroadcast(topic string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.sim.broadcasts++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordBroadcast(topic)
	}
}

// SimSnapshot is a copy of the simulation counters.
type SimSnapshot struct {
	GamesByKind    map[string]int
	Possessions    int
	SeriesByRound  map[string]int
	AutoplayCycles int
	AutoplayErrors int
	LiveClients    int
	LiveBroadcasts int
}

// Sim returns a copy of the simulation counters.
func (r *Recorder) Sim() SimSnapshot {
	if r == nil {
		return SimSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := SimSnapshot{
		GamesByKind:    make(map[string]int, len(r.sim.games)),
		Possessions:    r.sim.possessions,
		SeriesByRound:  make(map[string]int, len(r.sim.series)),
		AutoplayCycles: r.sim.autoplay,
		AutoplayErrors: r.sim.autoplayErr,
		LiveClients:    r.sim.liveClients,
		LiveBroadcasts: r.sim.broadcasts,
	}
	for k, v := range r.sim.games {
		out.GamesByKind[k] = v
	}
	for k, v := range r.sim.series {
		out.SeriesByRound[k] = v
	}
	return out
}

// statsLocked returns the provider's counters; r.mu must be held.
func (r *Recorder) statsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) snapshot(provider string) providerStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[provider]; ok && stats != nil {
		return *stats
	}
	return providerStats{}
}
