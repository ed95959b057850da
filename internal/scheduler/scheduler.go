package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"matchday-service/internal/domain/matches"
	"matchday-service/internal/logging"
	"matchday-service/internal/metrics"
)

// Refresher runs one full refresh cycle and returns the served match list
// plus whether a transport fetch actually happened (false on cache reuse).
type Refresher interface {
	Tick(ctx context.Context) ([]matches.Match, bool)
}

// Scheduler drives the Refresher on an adaptive cadence: the base interval
// on quiet days, the fast interval while matches are in play or a kickoff
// is imminent, and a one-shot wake at the next kickoff instant. When a
// cycle serves an empty day the loop goes dormant until RefreshNow.
type Scheduler struct {
	refresher Refresher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	base      time.Duration
	fast      time.Duration
	now       func() time.Time

	refreshCh chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	stopOnce  sync.Once
	startMu   sync.Mutex
	started   bool
	inFlight  atomic.Bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the scheduler's recent activity.
type Status struct {
	CyclesRun    int
	LastCycle    time.Time
	LastInterval time.Duration
	LastServed   int
	Dormant      bool
}

// Config wires a Scheduler.
type Config struct {
	Refresher    Refresher
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
	BaseInterval time.Duration
	FastInterval time.Duration
	Now          func() time.Time
}

// New constructs a Scheduler with sane defaults.
func New(cfg Config) *Scheduler {
	base := cfg.BaseInterval
	if base <= 0 {
		base = DefaultBaseInterval
	}
	fast := cfg.FastInterval
	if fast <= 0 {
		fast = DefaultFastInterval
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		refresher: cfg.Refresher,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		base:      base,
		fast:      fast,
		now:       now,
		refreshCh: make(chan struct{}, 1),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Start launches the scheduling loop until the context is cancelled or Stop
// is called. The first cycle runs immediately to warm data on boot.
func (s *Scheduler) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	go s.run(ctx)
}

// Stop halts the scheduling loop and waits for it to exit, so callers can
// safely dispose state the loop mutates.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		close(s.done)
	})

	s.startMu.Lock()
	started := s.started
	s.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RefreshNow requests an immediate cycle. The request is dropped when a
// cycle is already running or one is already queued; it reports whether
// the request was accepted. This is also the only way to wake a dormant
// scheduler after an empty day.
func (s *Scheduler) RefreshNow() bool {
	if s.inFlight.Load() {
		return false
	}
	select {
	case s.refreshCh <- struct{}{}:
		return true
	default:
		return false
	}
}

// Status returns a snapshot of the scheduler's recent activity.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.stopped)
	logging.Info(s.logger, "scheduler started",
		logging.FieldInterval, s.base.String(),
	)

	ticker := time.NewTicker(s.base)
	defer ticker.Stop()
	current := s.base
	dormant := false
	var kickoffTimer *time.Timer
	defer func() {
		if kickoffTimer != nil {
			kickoffTimer.Stop()
		}
	}()

	served, fetched := s.cycle(ctx)
	var lastFetch time.Time
	if fetched {
		lastFetch = s.now()
	}

	for {
		var kickoffC <-chan time.Time

		if kickoffTimer != nil {
			kickoffTimer.Stop()
			kickoffTimer = nil
		}

		if len(served) == 0 {
			// Nothing on today's slate: go dormant instead of polling an
			// empty day. RefreshNow re-arms the loop.
			if !dormant {
				ticker.Stop()
				drain(ticker.C)
				dormant = true
				s.setDormant(true)
				logging.Info(s.logger, "no matches served, scheduler dormant")
			}
		} else {
			interval := ChooseInterval(served, s.now(), s.base, s.fast)
			s.setInterval(interval)
			// Re-arm only on cadence change; an unchanged interval keeps
			// the running ticker.
			if dormant || interval != current {
				ticker.Reset(interval)
				current = interval
				dormant = false
				s.setDormant(false)
				logging.Info(s.logger, "cadence set",
					logging.FieldInterval, interval.String(),
					logging.FieldCount, len(served),
				)
			}

			if next, ok := NextKickoff(served, s.now()); ok {
				kickoffTimer = time.NewTimer(next.Sub(s.now()))
				kickoffC = kickoffTimer.C
			}
		}

		select {
		case <-ctx.Done():
			logging.Info(s.logger, "scheduler stopped")
			return
		case <-s.done:
			logging.Info(s.logger, "scheduler stopped")
			return
		case <-s.refreshCh:
			served, fetched = s.cycle(ctx)
		case <-ticker.C:
			served, fetched = s.cycle(ctx)
		case <-kickoffC:
			// One-shot kickoff wake. Skip it when a fetch completed within
			// the suppression window, even if a cache-reuse cycle ran since;
			// the data is already as close to kickoff as it gets.
			if !lastFetch.IsZero() && s.now().Sub(lastFetch) < kickoffSuppression {
				logging.Info(s.logger, "kickoff wake suppressed, recent fetch")
				continue
			}
			served, fetched = s.cycle(ctx)
		}
		if fetched {
			lastFetch = s.now()
		}
	}
}

// errNoData marks a cycle that went to the transport and still came back
// with nothing to serve.
var errNoData = errors.New("no data available")

func (s *Scheduler) cycle(ctx context.Context) ([]matches.Match, bool) {
	start := time.Now()
	s.inFlight.Store(true)
	served, fetched := s.refresher.Tick(ctx)
	s.inFlight.Store(false)

	var cycleErr error
	if fetched && len(served) == 0 {
		cycleErr = errNoData
	}
	s.metrics.RecordSchedulerCycle(time.Since(start), cycleErr)
	s.recordCycle(len(served))
	return served, fetched
}

func (s *Scheduler) recordCycle(servedCount int) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.CyclesRun++
	s.status.LastCycle = s.now()
	s.status.LastServed = servedCount
}

func (s *Scheduler) setInterval(d time.Duration) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastInterval = d
}

func (s *Scheduler) setDormant(dormant bool) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.Dormant = dormant
}

func drain(c <-chan time.Time) {
	select {
	case <-c:
	default:
	}
}
