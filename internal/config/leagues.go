package config

import (
	"os"
	"strings"
)

// League pairs a display name with the provider-specific competition code.
type League struct {
	Name string
	Code string
}

// ParseLeagues decodes the "Name:CODE,Name:CODE" env encoding. Entries
// missing a code are dropped, as is any repeat of an already-seen code:
// two entries for the same competition would fetch and serve the same
// matches twice. An empty result falls back to the defaults.
func ParseLeagues(raw string) []League {
	var leagues []League
	seen := make(map[string]struct{})
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, code, ok := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)
		code = strings.TrimSpace(code)
		if !ok || name == "" || code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		leagues = append(leagues, League{Name: name, Code: code})
	}
	return leagues
}

func leaguesEnvOrDefault(key string) []League {
	if parsed := ParseLeagues(os.Getenv(key)); len(parsed) > 0 {
		return parsed
	}
	out := make([]League, len(defaultLeagues))
	copy(out, defaultLeagues)
	return out
}
