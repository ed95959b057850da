package cache

import (
	"time"

	"matchday-service/internal/domain/matches"
)

// DefaultDuration is the freshness horizon for reusing a cached batch.
const DefaultDuration = 120 * time.Second

// Entry is the last good aggregated result set. Owned exclusively by the
// Cache; consumers only ever see copies.
type Entry struct {
	Matches      []matches.Match
	FetchedAt    time.Time
	ValidForDate string
}

// DecisionKind labels how the served match list was obtained.
type DecisionKind string

const (
	// DecisionFresh: a successful fetch replaced the entry.
	DecisionFresh DecisionKind = "fresh"
	// DecisionReuse: the entry was fresh enough to skip fetching.
	DecisionReuse DecisionKind = "reuse"
	// DecisionStale: the fetch yielded nothing but a same-day entry exists;
	// serve it rather than flicker to an empty display.
	DecisionStale DecisionKind = "stale"
	// DecisionEmpty: no usable cache and the fetch yielded nothing.
	DecisionEmpty DecisionKind = "empty"
)

// Decision is the outcome of one cache resolution.
type Decision struct {
	Kind      DecisionKind
	Matches   []matches.Match
	FetchedAt time.Time
}

// Cache holds the single per-day entry. Not safe for concurrent use; all
// access happens on the scheduler's control flow.
type Cache struct {
	duration time.Duration
	entry    *Entry
}

// New constructs a Cache. A non-positive duration falls back to the default.
func New(duration time.Duration) *Cache {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Cache{duration: duration}
}

// Reuse reports whether the cached entry can be served without fetching:
// non-empty, valid for today, and younger than the cache duration. Freshness
// is independent of live-match presence; live urgency is the scheduler's
// concern, not the cache's.
func (c *Cache) Reuse(now time.Time, today string) (Decision, bool) {
	e := c.entry
	if e == nil || len(e.Matches) == 0 {
		return Decision{}, false
	}
	if e.ValidForDate != today {
		return Decision{}, false
	}
	if now.Sub(e.FetchedAt) >= c.duration {
		return Decision{}, false
	}
	return Decision{Kind: DecisionReuse, Matches: copyMatches(e.Matches), FetchedAt: e.FetchedAt}, true
}

// Resolve folds a completed fetch into the cache and decides what to serve.
// An empty batch never clears a same-day entry: rate-limited or not, the
// stale entry is served on the assumption the emptiness is transient.
func (c *Cache) Resolve(fresh []matches.Match, now time.Time, today string) Decision {
	if len(fresh) > 0 {
		c.entry = &Entry{
			Matches:      copyMatches(fresh),
			FetchedAt:    now,
			ValidForDate: today,
		}
		return Decision{Kind: DecisionFresh, Matches: copyMatches(fresh), FetchedAt: now}
	}

	if e := c.entry; e != nil && e.ValidForDate == today && len(e.Matches) > 0 {
		return Decision{Kind: DecisionStale, Matches: copyMatches(e.Matches), FetchedAt: e.FetchedAt}
	}
	return Decision{Kind: DecisionEmpty, FetchedAt: now}
}

// Rollover discards the entry when the computed today has moved past its
// validity date. Returns true when a reset happened.
func (c *Cache) Rollover(today string) bool {
	if c.entry != nil && c.entry.ValidForDate != today {
		c.entry = nil
		return true
	}
	return false
}

// Entry returns a copy of the current entry, if any.
func (c *Cache) Entry() (Entry, bool) {
	if c.entry == nil {
		return Entry{}, false
	}
	return Entry{
		Matches:      copyMatches(c.entry.Matches),
		FetchedAt:    c.entry.FetchedAt,
		ValidForDate: c.entry.ValidForDate,
	}, true
}

func copyMatches(in []matches.Match) []matches.Match {
	out := make([]matches.Match, len(in))
	copy(out, in)
	return out
}
