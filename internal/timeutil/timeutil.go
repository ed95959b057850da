package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DefaultReferenceTZ anchors "today" regardless of the host timezone.
const DefaultReferenceTZ = "Europe/London"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ResolveLocation loads a timezone by name, falling back to the default
// reference zone and finally UTC.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		name = DefaultReferenceTZ
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultReferenceTZ); err == nil {
		return loc
	}
	return time.UTC
}
