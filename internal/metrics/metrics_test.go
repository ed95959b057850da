package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksLeagueFetches(t *testing.T) {
	r := NewRecorder()

	r.RecordLeagueFetch("PL", 120*time.Millisecond, nil)
	r.RecordLeagueFetch("PL", 80*time.Millisecond, errors.New("boom"))
	r.RecordLeagueFetch("ELC", 50*time.Millisecond, nil)

	snap := r.Snapshot("PL")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected PL snapshot: %+v", snap)
	}
	if snap.LastCallLatency != 80*time.Millisecond {
		t.Fatalf("unexpected latency: %v", snap.LastCallLatency)
	}
	if other := r.Snapshot("ELC"); other.Calls != 1 || other.Errors != 0 {
		t.Fatalf("unexpected ELC snapshot: %+v", other)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	r := NewRecorder()

	r.RecordRateLimit("PL", 30*time.Second)
	r.RecordRateLimit("PL", 0)

	snap := r.Snapshot("PL")
	if snap.RateLimitHits != 2 {
		t.Fatalf("expected 2 hits, got %d", snap.RateLimitHits)
	}
	if snap.LastRetryAfter != 30*time.Second {
		t.Fatalf("expected retry-after preserved, got %v", snap.LastRetryAfter)
	}
}

func TestRecorderTracksCacheDecisions(t *testing.T) {
	r := NewRecorder()

	r.RecordCacheDecision("fresh")
	r.RecordCacheDecision("fresh")
	r.RecordCacheDecision("reuse")

	if got := r.CacheDecisions("fresh"); got != 2 {
		t.Fatalf("expected 2 fresh decisions, got %d", got)
	}
	if got := r.CacheDecisions("empty"); got != 0 {
		t.Fatalf("expected 0 empty decisions, got %d", got)
	}
}

func TestRecorderNilSafe(t *testing.T) {
	var r *Recorder
	r.RecordLeagueFetch("PL", time.Second, nil)
	r.RecordRateLimit("PL", 0)
	r.RecordSchedulerCycle(time.Second, nil)
	r.RecordCacheDecision("fresh")
	if snap := r.Snapshot("PL"); snap.Calls != 0 {
		t.Fatalf("expected zero snapshot from nil recorder, got %+v", snap)
	}
}

func TestSnapshotUnknownLeague(t *testing.T) {
	r := NewRecorder()
	if snap := r.Snapshot("missing"); snap != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestRecorderTracksSchedulerCycles(t *testing.T) {
	r := NewRecorder()
	r.RecordSchedulerCycle(time.Second, nil)
	r.RecordSchedulerCycle(2*time.Second, errors.New("no data"))

	cycles, failed := r.SchedulerCycles()
	if cycles != 2 || failed != 1 {
		t.Fatalf("expected cycles=2 failed=1, got %d/%d", cycles, failed)
	}

	var nilRec *Recorder
	if cycles, failed := nilRec.SchedulerCycles(); cycles != 0 || failed != 0 {
		t.Fatalf("expected zero counts from nil recorder, got %d/%d", cycles, failed)
	}
}
