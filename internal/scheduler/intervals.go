package scheduler

import (
	"time"

	"matchday-service/internal/domain/matches"
)

const (
	// DefaultBaseInterval drives quiet periods with no live matches.
	DefaultBaseInterval = 5 * time.Minute
	// DefaultFastInterval drives live periods.
	DefaultFastInterval = 1 * time.Minute
	// ImminenceWindow is how far ahead of a kickoff the fast cadence engages.
	ImminenceWindow = 3 * time.Minute
	// kickoffSuppression skips the kickoff one-shot when a fetch just ran.
	kickoffSuppression = 30 * time.Second
)

// ChooseInterval picks the polling cadence from the served match list: fast
// when any match is in play or a kickoff is imminent, base otherwise.
func ChooseInterval(served []matches.Match, now time.Time, base, fast time.Duration) time.Duration {
	for _, m := range served {
		if m.Status.InPlay() {
			return fast
		}
		if m.Status == matches.StatusScheduled && imminent(m.Kickoff, now) {
			return fast
		}
	}
	return base
}

// NextKickoff returns the earliest upcoming kickoff inside the imminence
// window among still-scheduled matches, or false when none qualifies.
// Kickoffs further out are left to the recurring cadence.
func NextKickoff(served []matches.Match, now time.Time) (time.Time, bool) {
	var next time.Time
	found := false
	for _, m := range served {
		if m.Status != matches.StatusScheduled || !imminent(m.Kickoff, now) {
			continue
		}
		if !found || m.Kickoff.Before(next) {
			next = m.Kickoff
			found = true
		}
	}
	return next, found
}

func imminent(kickoff time.Time, now time.Time) bool {
	until := kickoff.Sub(now)
	return until > 0 && until <= ImminenceWindow
}
