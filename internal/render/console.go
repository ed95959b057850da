package render

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"text/tabwriter"
	"time"

	"matchday-service/internal/domain/matches"
)

// Console writes a plain-text scoreboard for every published snapshot.
// Safe for concurrent use.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	loc *time.Location
}

// NewConsole constructs a Console writing to out, formatting kickoff times
// in the given location.
func NewConsole(out io.Writer, loc *time.Location) *Console {
	if loc == nil {
		loc = time.UTC
	}
	return &Console{out: out, loc: loc}
}

// Render prints the snapshot as a table, or a single line when the day is
// empty.
func (c *Console) Render(snap matches.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snap.Empty {
		fmt.Fprintf(c.out, "%s  no matches today\n", snap.Date)
		return
	}

	fmt.Fprintf(c.out, "%s  %d matches  (as of %s)\n",
		snap.Date, len(snap.Matches), snap.FetchedAt.In(c.loc).Format("15:04:05"))

	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, m := range snap.Matches {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Competition,
			m.HomeTeam.Name,
			scoreCell(m.Score),
			m.AwayTeam.Name,
			m.Kickoff.In(c.loc).Format("15:04"),
			m.Status,
		)
	}
	w.Flush()
}

func scoreCell(s matches.Score) string {
	if !s.Known {
		return "- : -"
	}
	return strconv.Itoa(s.Home) + " : " + strconv.Itoa(s.Away)
}
