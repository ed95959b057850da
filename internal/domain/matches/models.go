package matches

import "time"

// MatchStatus is the canonical lifecycle vocabulary every provider code maps into.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusLive      MatchStatus = "LIVE"
	StatusHalftime  MatchStatus = "HALFTIME"
	StatusFulltime  MatchStatus = "FULLTIME"
	StatusPostponed MatchStatus = "POSTPONED"
	StatusCancelled MatchStatus = "CANCELLED"
	StatusSuspended MatchStatus = "SUSPENDED"
)

// Valid reports whether the status belongs to the canonical vocabulary.
func (s MatchStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusHalftime, StatusFulltime,
		StatusPostponed, StatusCancelled, StatusSuspended:
		return true
	}
	return false
}

// InPlay reports whether the status describes a match currently being played.
func (s MatchStatus) InPlay() bool {
	return s == StatusLive || s == StatusHalftime
}

// Team carries the display identity of one side of a match.
type Team struct {
	Name  string `json:"name"`
	Crest string `json:"crest,omitempty"`
}

// Score captures home and away goals. The pair is known or unknown as a unit;
// a provider response missing either side never half-fills a Score.
type Score struct {
	Home  int  `json:"home"`
	Away  int  `json:"away"`
	Known bool `json:"known"`
}

// KnownScore builds a Score with both sides present.
func KnownScore(home, away int) Score {
	return Score{Home: home, Away: away, Known: true}
}

// Match is the canonical shape exposed to consumers.
type Match struct {
	ID          string      `json:"id"`
	Competition string      `json:"competition"`
	HomeTeam    Team        `json:"homeTeam"`
	AwayTeam    Team        `json:"awayTeam"`
	Score       Score       `json:"score"`
	Status      MatchStatus `json:"status"`
	Kickoff     time.Time   `json:"kickoff"`
}

// Snapshot is the payload handed to the renderer and to read accessors.
type Snapshot struct {
	Date      string    `json:"date"`
	Matches   []Match   `json:"matches"`
	FetchedAt time.Time `json:"fetchedAt"`
	Empty     bool      `json:"empty"`
}

// NewSnapshot builds a Snapshot, deriving the empty flag from the match list.
func NewSnapshot(date string, list []Match, fetchedAt time.Time) Snapshot {
	return Snapshot{
		Date:      date,
		Matches:   list,
		FetchedAt: fetchedAt,
		Empty:     len(list) == 0,
	}
}
