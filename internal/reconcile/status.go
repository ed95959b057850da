package reconcile

import (
	"strings"

	"matchday-service/internal/domain/matches"
)

// StatusTable maps provider-native status codes (uppercased) to the
// canonical vocabulary.
type StatusTable map[string]matches.MatchStatus

// Normalizer resolves provider status codes through per-provider tables.
// Unknown providers and unmapped codes both fall back to SCHEDULED, so the
// output is always a member of the canonical set.
type Normalizer struct {
	tables map[string]StatusTable
}

// NewNormalizer builds a Normalizer from the built-in tables merged with any
// extra per-provider tables (extras win on conflict).
func NewNormalizer(extra map[string]StatusTable) *Normalizer {
	tables := make(map[string]StatusTable, len(builtinTables)+len(extra))
	for provider, table := range builtinTables {
		tables[provider] = table
	}
	for provider, table := range extra {
		merged := make(StatusTable, len(table))
		for code, status := range tables[provider] {
			merged[code] = status
		}
		for code, status := range table {
			merged[strings.ToUpper(code)] = status
		}
		tables[provider] = merged
	}
	return &Normalizer{tables: tables}
}

// Normalize maps a provider status code to the canonical vocabulary.
func (n *Normalizer) Normalize(provider, code string) matches.MatchStatus {
	if n != nil {
		if table, ok := n.tables[provider]; ok {
			if status, ok := table[strings.ToUpper(strings.TrimSpace(code))]; ok {
				return status
			}
		}
	}
	return matches.StatusScheduled
}

// builtinTables covers the providers shipped with the service.
var builtinTables = map[string]StatusTable{
	"footballdata": {
		"SCHEDULED": matches.StatusScheduled,
		"TIMED":     matches.StatusScheduled,
		"IN_PLAY":   matches.StatusLive,
		"LIVE":      matches.StatusLive,
		"PAUSED":    matches.StatusHalftime,
		"FINISHED":  matches.StatusFulltime,
		"AWARDED":   matches.StatusFulltime,
		"POSTPONED": matches.StatusPostponed,
		"SUSPENDED": matches.StatusSuspended,
		"CANCELLED": matches.StatusCancelled,
	},
	"fixture": {
		"SCHEDULED": matches.StatusScheduled,
		"LIVE":      matches.StatusLive,
		"HALFTIME":  matches.StatusHalftime,
		"FULLTIME":  matches.StatusFulltime,
		"POSTPONED": matches.StatusPostponed,
		"SUSPENDED": matches.StatusSuspended,
		"CANCELLED": matches.StatusCancelled,
	},
}
