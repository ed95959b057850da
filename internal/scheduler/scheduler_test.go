package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"matchday-service/internal/domain/matches"
	"matchday-service/internal/metrics"
)

// scriptedRefresher serves a sequence of tick outcomes, repeating the last
// one once the script runs out.
type scriptedRefresher struct {
	mu      sync.Mutex
	script  []tickResult
	calls   int
	entered chan struct{}
	release chan struct{}
}

type tickResult struct {
	served  []matches.Match
	fetched bool
}

func (r *scriptedRefresher) Tick(ctx context.Context) ([]matches.Match, bool) {
	_ = ctx
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.calls
	r.calls++
	if idx >= len(r.script) {
		idx = len(r.script) - 1
	}
	res := r.script[idx]
	return res.served, res.fetched
}

func (r *scriptedRefresher) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func liveMatch() matches.Match {
	return matches.Match{ID: "m1", Status: matches.StatusLive, Kickoff: time.Now().Add(-30 * time.Minute)}
}

func quietMatch() matches.Match {
	return matches.Match{ID: "m1", Status: matches.StatusScheduled, Kickoff: time.Now().Add(6 * time.Hour)}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestFastCadenceWhileLive(t *testing.T) {
	r := &scriptedRefresher{script: []tickResult{{served: []matches.Match{liveMatch()}, fetched: true}}}
	s := New(Config{Refresher: r, BaseInterval: 10 * time.Second, FastInterval: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, 2*time.Second, func() bool { return r.callCount() >= 3 })

	st := s.Status()
	if st.LastInterval != 20*time.Millisecond {
		t.Fatalf("expected fast interval, got %s", st.LastInterval)
	}
	if st.Dormant {
		t.Fatal("expected scheduler active")
	}
}

func TestBaseCadenceWhenQuiet(t *testing.T) {
	r := &scriptedRefresher{script: []tickResult{{served: []matches.Match{quietMatch()}, fetched: true}}}
	s := New(Config{Refresher: r, BaseInterval: 10 * time.Second, FastInterval: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, time.Second, func() bool { return r.callCount() == 1 })
	time.Sleep(100 * time.Millisecond)

	if got := r.callCount(); got != 1 {
		t.Fatalf("expected only the boot cycle on the base cadence, got %d", got)
	}
	if st := s.Status(); st.LastInterval != 10*time.Second {
		t.Fatalf("expected base interval, got %s", st.LastInterval)
	}
}

func TestDormantOnEmptyDayAndWakeViaRefreshNow(t *testing.T) {
	r := &scriptedRefresher{script: []tickResult{
		{served: nil, fetched: true},
		{served: []matches.Match{quietMatch()}, fetched: true},
	}}
	s := New(Config{Refresher: r, BaseInterval: 20 * time.Millisecond, FastInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, time.Second, func() bool { return s.Status().Dormant })
	time.Sleep(100 * time.Millisecond)
	if got := r.callCount(); got != 1 {
		t.Fatalf("expected no cycles while dormant, got %d", got)
	}

	if !s.RefreshNow() {
		t.Fatal("expected RefreshNow accepted while idle")
	}
	waitFor(t, time.Second, func() bool { return r.callCount() >= 2 })
	waitFor(t, time.Second, func() bool { return !s.Status().Dormant })
}

func TestRefreshNowDroppedWhileInFlight(t *testing.T) {
	r := &scriptedRefresher{
		script:  []tickResult{{served: []matches.Match{quietMatch()}, fetched: true}},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(Config{Refresher: r, BaseInterval: 10 * time.Second, FastInterval: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	<-r.entered
	if s.RefreshNow() {
		t.Fatal("expected RefreshNow dropped while a cycle is in flight")
	}
	close(r.release)

	waitFor(t, time.Second, func() bool { return s.Status().CyclesRun == 1 })
}

func TestKickoffOneShotWakesScheduler(t *testing.T) {
	// The boot cycle reuses the cache (fetched=false), so the kickoff wake
	// must not be suppressed.
	soon := matches.Match{ID: "m1", Status: matches.StatusScheduled, Kickoff: time.Now().Add(60 * time.Millisecond)}
	r := &scriptedRefresher{script: []tickResult{
		{served: []matches.Match{soon}, fetched: false},
		{served: []matches.Match{{ID: "m1", Status: matches.StatusLive, Kickoff: soon.Kickoff}}, fetched: true},
	}}
	s := New(Config{Refresher: r, BaseInterval: 10 * time.Second, FastInterval: 10 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, 2*time.Second, func() bool { return r.callCount() >= 2 })
}

func TestKickoffWakeSuppressedAfterRecentFetch(t *testing.T) {
	soon := matches.Match{ID: "m1", Status: matches.StatusScheduled, Kickoff: time.Now().Add(40 * time.Millisecond)}
	r := &scriptedRefresher{script: []tickResult{{served: []matches.Match{soon}, fetched: true}}}
	s := New(Config{Refresher: r, BaseInterval: 10 * time.Second, FastInterval: 10 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, time.Second, func() bool { return r.callCount() == 1 })
	time.Sleep(150 * time.Millisecond)
	if got := r.callCount(); got != 1 {
		t.Fatalf("expected kickoff wake suppressed after a fresh fetch, got %d cycles", got)
	}
}

func TestStopHaltsLoop(t *testing.T) {
	r := &scriptedRefresher{script: []tickResult{{served: []matches.Match{liveMatch()}, fetched: true}}}
	s := New(Config{Refresher: r, BaseInterval: 10 * time.Millisecond, FastInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitFor(t, time.Second, func() bool { return r.callCount() >= 1 })
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	after := r.callCount()
	time.Sleep(50 * time.Millisecond)
	if r.callCount() != after {
		t.Fatal("expected no cycles after Stop")
	}
}

func TestStartIsIdempotent(t *testing.T) {
	r := &scriptedRefresher{script: []tickResult{{served: nil, fetched: true}}}
	s := New(Config{Refresher: r, BaseInterval: 10 * time.Second, FastInterval: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, time.Second, func() bool { return r.callCount() == 1 })
	time.Sleep(50 * time.Millisecond)
	if got := r.callCount(); got != 1 {
		t.Fatalf("expected a single boot cycle, got %d", got)
	}
}

func TestCycleErrorRecordedOnEmptyFetch(t *testing.T) {
	r := &scriptedRefresher{script: []tickResult{
		{served: nil, fetched: true},
		{served: []matches.Match{quietMatch()}, fetched: true},
	}}
	rec := metrics.NewRecorder()
	s := New(Config{Refresher: r, Metrics: rec, BaseInterval: 10 * time.Second, FastInterval: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, time.Second, func() bool { return s.Status().Dormant })
	if cycles, failed := rec.SchedulerCycles(); cycles != 1 || failed != 1 {
		t.Fatalf("expected the empty fetch counted as a failed cycle, got cycles=%d failed=%d", cycles, failed)
	}

	s.RefreshNow()
	waitFor(t, time.Second, func() bool {
		cycles, _ := rec.SchedulerCycles()
		return cycles >= 2
	})
	if _, failed := rec.SchedulerCycles(); failed != 1 {
		t.Fatalf("expected the serving cycle not counted as failed, got failed=%d", failed)
	}
}

func TestKickoffWakeSuppressedAfterFetchThenReuse(t *testing.T) {
	// A cache-reuse cycle between the fetch and the kickoff wake must not
	// defeat the suppression window: it is measured from the last fetch.
	soon := matches.Match{ID: "m1", Status: matches.StatusScheduled, Kickoff: time.Now().Add(100 * time.Millisecond)}
	r := &scriptedRefresher{script: []tickResult{
		{served: []matches.Match{soon}, fetched: true},
		{served: []matches.Match{soon}, fetched: false},
	}}
	s := New(Config{Refresher: r, BaseInterval: 10 * time.Second, FastInterval: 10 * time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	defer s.Stop(context.Background())

	waitFor(t, time.Second, func() bool { return r.callCount() == 1 })
	if !s.RefreshNow() {
		t.Fatal("expected RefreshNow accepted")
	}
	waitFor(t, time.Second, func() bool { return r.callCount() == 2 })

	time.Sleep(250 * time.Millisecond)
	if got := r.callCount(); got != 2 {
		t.Fatalf("expected kickoff wake suppressed after the recent fetch, got %d cycles", got)
	}
}
