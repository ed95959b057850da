package fixture

import (
	"context"
	"time"

	"matchday-service/internal/providers"
	"matchday-service/internal/timeutil"
)

// ProviderName keys the fixture status table.
const ProviderName = "fixture"

// Provider returns a static set of matches useful for local runs without an
// API key. Kickoffs are derived from the clock so the scheduler has both an
// in-play and an upcoming match to react to.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{now: time.Now}
}

// NewWithClock creates a fixture provider with an injected time source.
func NewWithClock(now func() time.Time) *Provider {
	if now == nil {
		now = time.Now
	}
	return &Provider{now: now}
}

// FetchMatches returns a deterministic set of example matches for the league.
func (p *Provider) FetchMatches(ctx context.Context, league providers.League, window timeutil.Window) ([]providers.RawMatch, error) {
	_ = ctx

	base := p.now().UTC().Truncate(time.Minute)
	one, two := 1, 0

	return []providers.RawMatch{
		{
			Provider:    ProviderName,
			MatchID:     "fixture-" + league.Code + "-1",
			Competition: league.Name,
			HomeName:    "Harriers",
			AwayName:    "Rovers",
			HomeScore:   &one,
			AwayScore:   &two,
			RawStatus:   "live",
			Kickoff:     base.Add(-30 * time.Minute),
		},
		{
			Provider:    ProviderName,
			MatchID:     "fixture-" + league.Code + "-2",
			Competition: league.Name,
			HomeName:    "Wanderers",
			AwayName:    "Athletic",
			RawStatus:   "scheduled",
			Kickoff:     base.Add(2 * time.Hour),
		},
	}, nil
}
