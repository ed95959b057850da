package reconcile

import (
	"fmt"
	"strings"

	"matchday-service/internal/domain/matches"
	"matchday-service/internal/providers"
)

// Fact is the last-known score/status pair for one match id. Facts outlive a
// single cache entry so transient upstream hiccups never regress a match's
// displayed state.
type Fact struct {
	Score     matches.Score
	Status    matches.MatchStatus
	HasStatus bool
}

// Reconciler merges freshly fetched raw matches with last-known facts. Not
// safe for concurrent use; all calls happen on the scheduler's control flow.
type Reconciler struct {
	normalizer *Normalizer
	facts      map[string]Fact
}

// NewReconciler constructs a Reconciler around a status normalizer.
func NewReconciler(normalizer *Normalizer) *Reconciler {
	return &Reconciler{
		normalizer: normalizer,
		facts:      make(map[string]Fact),
	}
}

// Reconcile derives the canonical match list from one batch of raw matches.
// Ids are unique in the output: when a batch carries the same match twice
// (overlapping league entries, upstream duplication), only the first
// occurrence is kept. The transformation is otherwise per-match.
func (r *Reconciler) Reconcile(raws []providers.RawMatch) []matches.Match {
	out := make([]matches.Match, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		id := MatchID(raw)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, r.reconcileOne(id, raw))
	}
	return out
}

func (r *Reconciler) reconcileOne(id string, raw providers.RawMatch) matches.Match {
	fact := r.facts[id]

	score := r.resolveScore(raw, &fact)
	status := r.resolveStatus(raw, &fact)
	r.facts[id] = fact

	return matches.Match{
		ID:          id,
		Competition: raw.Competition,
		HomeTeam:    matches.Team{Name: raw.HomeName, Crest: raw.HomeCrest},
		AwayTeam:    matches.Team{Name: raw.AwayName, Crest: raw.AwayCrest},
		Score:       score,
		Status:      status,
		Kickoff:     raw.Kickoff,
	}
}

// resolveScore applies the pair rule: both sides present means use and record
// them verbatim; otherwise fall back to the last-known pair, never half-fill.
func (r *Reconciler) resolveScore(raw providers.RawMatch, fact *Fact) matches.Score {
	if raw.HomeScore != nil && raw.AwayScore != nil {
		score := matches.KnownScore(*raw.HomeScore, *raw.AwayScore)
		fact.Score = score
		return score
	}
	if fact.Score.Known {
		return fact.Score
	}
	return matches.Score{}
}

// resolveStatus guards against regression: a SCHEDULED resolution (the
// unmapped-code default) never overrides a previously known status.
func (r *Reconciler) resolveStatus(raw providers.RawMatch, fact *Fact) matches.MatchStatus {
	status := r.normalizer.Normalize(raw.Provider, raw.RawStatus)
	if status == matches.StatusScheduled && fact.HasStatus {
		return fact.Status
	}
	fact.Status = status
	fact.HasStatus = true
	return status
}

// Reset discards all last-known facts, re-arming every match for a new day.
func (r *Reconciler) Reset() {
	r.facts = make(map[string]Fact)
}

// MatchID derives a stable identifier: the provider id when present, else a
// composite of the team names so repeated fetches of the same fixture agree.
func MatchID(raw providers.RawMatch) string {
	if raw.MatchID != "" {
		return raw.MatchID
	}
	return fmt.Sprintf("%s-%s-vs-%s", raw.Provider, slug(raw.HomeName), slug(raw.AwayName))
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
