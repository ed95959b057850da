package providers

import (
	"context"
	"time"

	"matchday-service/internal/timeutil"
)

// League identifies one competition to fetch: a display name plus the
// provider-specific code used on the wire.
type League struct {
	Name string
	Code string
}

// RawMatch carries one match as the upstream reported it. Status stays the
// provider-native code and scores stay optional; canonicalization is a
// downstream concern so providers remain thin transports.
type RawMatch struct {
	Provider    string
	MatchID     string
	Competition string
	HomeName    string
	HomeCrest   string
	AwayName    string
	AwayCrest   string
	HomeScore   *int
	AwayScore   *int
	RawStatus   string
	Kickoff     time.Time
}

// MatchProvider defines how upstream match data is fetched for one league
// over the given query window.
type MatchProvider interface {
	FetchMatches(ctx context.Context, league League, window timeutil.Window) ([]RawMatch, error)
}
