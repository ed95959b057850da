package timeutil

import "time"

// Window describes the query date range for one fetch batch, computed in the
// reference timezone. End runs one day past Today so late kickoffs that cross
// midnight in UTC but not in the reference zone are still returned upstream.
type Window struct {
	Today    string
	Start    string
	End      string
	Location *time.Location
}

// ComputeWindow derives the window for the given instant. Pure; callers must
// re-derive it every tick so day rollover is detected naturally.
func ComputeWindow(now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	today := FormatDate(local)
	return Window{
		Today:    today,
		Start:    today,
		End:      FormatDate(local.AddDate(0, 0, 1)),
		Location: loc,
	}
}

// SameLocalDay reports whether t falls on the window's calendar day in the
// reference zone. Providers can return edge-of-window spillover; this is the
// filter that drops it.
func (w Window) SameLocalDay(t time.Time) bool {
	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	return FormatDate(t.In(loc)) == w.Today
}
