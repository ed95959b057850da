package teststubs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"matchday-service/internal/domain/matches"
	"matchday-service/internal/providers"
	"matchday-service/internal/timeutil"
)

// StubProvider is a test double for providers.MatchProvider.
type StubProvider struct {
	Matches []providers.RawMatch
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}
}

// FetchMatches returns the configured matches and error while tracking calls.
func (s *StubProvider) FetchMatches(ctx context.Context, league providers.League, window timeutil.Window) ([]providers.RawMatch, error) {
	_ = ctx
	_ = league
	_ = window
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case s.Notify <- struct{}{}:
		default:
		}
	}
	return s.Matches, s.Err
}

// StubRenderer records every snapshot it is asked to display.
type StubRenderer struct {
	mu        sync.Mutex
	snapshots []matches.Snapshot
}

// Render appends the snapshot for later inspection.
func (r *StubRenderer) Render(snap matches.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snap)
}

// Snapshots returns a copy of everything rendered so far.
func (r *StubRenderer) Snapshots() []matches.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]matches.Snapshot, len(r.snapshots))
	copy(out, r.snapshots)
	return out
}

// Last returns the most recent snapshot, if any.
func (r *StubRenderer) Last() (matches.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return matches.Snapshot{}, false
	}
	return r.snapshots[len(r.snapshots)-1], true
}

// ManualClock is a settable time source for deterministic tests.
type ManualClock struct {
	mu sync.Mutex
	at time.Time
}

// NewManualClock starts a clock at the given instant.
func NewManualClock(at time.Time) *ManualClock {
	return &ManualClock{at: at}
}

// Now returns the current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.at
}

// Advance moves the clock forward.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(d)
}

// Set jumps the clock to an instant.
func (c *ManualClock) Set(at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = at
}
