package tracker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"matchday-service/internal/cache"
	"matchday-service/internal/domain/matches"
	"matchday-service/internal/fetch"
	"matchday-service/internal/logging"
	"matchday-service/internal/metrics"
	"matchday-service/internal/reconcile"
	"matchday-service/internal/timeutil"
)

// Renderer consumes the canonical match list after every cache decision so
// the display always reflects the latest known truth.
type Renderer interface {
	Render(snap matches.Snapshot)
}

// Tracker owns all per-day mutable state: the cache, the last-known facts,
// and the current day key. Every mutation happens on the scheduler-driven
// Tick flow; only the published snapshot is shared with other goroutines.
type Tracker struct {
	orchestrator *fetch.Orchestrator
	reconciler   *reconcile.Reconciler
	cache        *cache.Cache
	renderer     Renderer
	logger       *slog.Logger
	metrics      *metrics.Recorder
	loc          *time.Location
	now          func() time.Time

	day string

	snapMu   sync.RWMutex
	snapshot matches.Snapshot
}

// Config wires a Tracker.
type Config struct {
	Orchestrator *fetch.Orchestrator
	Reconciler   *reconcile.Reconciler
	Cache        *cache.Cache
	Renderer     Renderer
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	Location     *time.Location
	Now          func() time.Time
}

// New constructs a Tracker.
func New(cfg Config) *Tracker {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		orchestrator: cfg.Orchestrator,
		reconciler:   cfg.Reconciler,
		cache:        cfg.Cache,
		renderer:     cfg.Renderer,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		loc:          loc,
		now:          now,
	}
}

// Tick runs one full refresh cycle: rollover check, cache reuse check,
// fetch, reconcile, cache resolution, render. It returns the served match
// list and whether a fetch was actually performed (false on cache reuse).
func (t *Tracker) Tick(ctx context.Context) ([]matches.Match, bool) {
	nowAt := t.now()
	window := timeutil.ComputeWindow(nowAt, t.loc)

	if t.day != "" && t.day != window.Today {
		t.rollover(window.Today)
	}
	t.day = window.Today

	if decision, ok := t.cache.Reuse(nowAt, window.Today); ok {
		t.metrics.RecordCacheDecision(string(decision.Kind))
		t.publish(window.Today, decision)
		return decision.Matches, false
	}

	result := t.orchestrator.FetchAll(ctx, window)
	canonical := t.reconciler.Reconcile(result.Matches)
	decision := t.cache.Resolve(canonical, t.now(), window.Today)

	t.metrics.RecordCacheDecision(string(decision.Kind))
	if result.RateLimited {
		logging.Warn(t.logger, "batch was rate limited",
			logging.FieldDate, window.Today,
			logging.FieldDecision, string(decision.Kind),
		)
	}
	logging.Info(t.logger, "refresh cycle complete",
		logging.FieldDate, window.Today,
		logging.FieldDecision, string(decision.Kind),
		logging.FieldCount, len(decision.Matches),
	)

	t.publish(window.Today, decision)
	return decision.Matches, true
}

// Snapshot returns the current canonical match list with its freshness
// timestamp and empty flag. Safe for concurrent use.
func (t *Tracker) Snapshot() matches.Snapshot {
	t.snapMu.RLock()
	defer t.snapMu.RUnlock()
	return t.snapshot
}

// Reset discards the cache and all last-known facts, re-arming every league.
func (t *Tracker) Reset() {
	t.rollover("")
	t.day = ""
}

// Close disposes all per-day state, including the published snapshot.
func (t *Tracker) Close() {
	t.Reset()
	t.snapMu.Lock()
	t.snapshot = matches.Snapshot{}
	t.snapMu.Unlock()
}

func (t *Tracker) rollover(today string) {
	t.cache.Rollover(today)
	t.reconciler.Reset()
	logging.Info(t.logger, "day rollover, state reset", logging.FieldDate, today)
}

func (t *Tracker) publish(today string, decision cache.Decision) {
	snap := matches.NewSnapshot(today, decision.Matches, decision.FetchedAt)

	t.snapMu.Lock()
	t.snapshot = snap
	t.snapMu.Unlock()

	if t.renderer != nil {
		t.renderer.Render(snap)
	}
}
