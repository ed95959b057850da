package metrics

import (
	"sync"
	"time"
)

type leagueStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about league fetches and
// scheduler cycles, mirroring everything into OTel when configured.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*leagueStats
	decisions   map[string]int
	cycles      int
	cycleErrors int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:     make(map[string]*leagueStats),
		decisions: make(map[string]int),
		otel:      otel,
	}
}

// RecordLeagueFetch increments counters for one league fetch attempt and
// stores the last observed latency.
func (r *Recorder) RecordLeagueFetch(league string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(league)
	r.mu.Lock()
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLeagueFetch(league, duration, err)
	}
}

// RecordRateLimit tracks that a league fetch hit the upstream rate limit.
func (r *Recorder) RecordRateLimit(league string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	stats := r.ensureStats(league)
	r.mu.Lock()
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(league, retryAfter)
	}
}

// RecordSchedulerCycle tracks one refresh cycle and whether it failed.
func (r *Recorder) RecordSchedulerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.cycles++
	if err != nil {
		r.cycleErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSchedulerCycle(duration, err)
	}
}

// SchedulerCycles returns the total cycle count and how many of them failed.
func (r *Recorder) SchedulerCycles() (cycles, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles, r.cycleErrors
}

// RecordCacheDecision counts cache outcomes (fresh, reuse, stale, empty).
func (r *Recorder) RecordCacheDecision(decision string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.decisions[decision]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordCacheDecision(decision)
	}
}

// Snapshot is a copy of the current stats for one league.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(league string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[league]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// CacheDecisions returns how many times a given decision was taken.
func (r *Recorder) CacheDecisions(decision string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.decisions[decision]
}

func (r *Recorder) ensureStats(league string) *leagueStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[league]
	if !ok {
		stats = &leagueStats{}
		r.stats[league] = stats
	}
	return stats
}
