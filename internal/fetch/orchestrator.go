package fetch

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"matchday-service/internal/logging"
	"matchday-service/internal/metrics"
	"matchday-service/internal/providers"
	"matchday-service/internal/timeutil"
)

// Result aggregates one batch of per-league fetches. RateLimited reports
// whether any league was throttled upstream; a batch never carries an error.
type Result struct {
	Matches     []providers.RawMatch
	RateLimited bool
}

// Orchestrator issues one fetch per configured league, independently. No
// single league failure aborts the batch: rate limits flag the result,
// everything else logs and contributes nothing.
type Orchestrator struct {
	provider providers.MatchProvider
	leagues  []providers.League
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// New constructs an Orchestrator.
func New(provider providers.MatchProvider, leagues []providers.League, logger *slog.Logger, recorder *metrics.Recorder) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		leagues:  leagues,
		logger:   logger,
		metrics:  recorder,
	}
}

// FetchAll runs the batch for the given window. Per-league fetches run
// concurrently; the batch completes before the result is returned so the
// cache never sees a partial write.
func (o *Orchestrator) FetchAll(ctx context.Context, window timeutil.Window) Result {
	var (
		mu          sync.Mutex
		matches     []providers.RawMatch
		rateLimited bool
	)

	var g errgroup.Group
	for _, league := range o.leagues {
		league := league
		g.Go(func() error {
			start := time.Now()
			raws, err := o.provider.FetchMatches(ctx, league, window)
			o.metrics.RecordLeagueFetch(league.Code, time.Since(start), err)

			if err != nil {
				if rlErr, ok := providers.AsRateLimitError(err); ok {
					o.metrics.RecordRateLimit(league.Code, rlErr.RetryAfter)
					logging.Warn(o.logger, "league fetch rate limited",
						logging.FieldLeague, league.Code,
						logging.FieldStatusCode, rlErr.StatusCode,
					)
					mu.Lock()
					rateLimited = true
					mu.Unlock()
					return nil
				}
				logging.Error(o.logger, "league fetch failed", err,
					logging.FieldLeague, league.Code,
				)
				return nil
			}

			kept := filterToDay(raws, window)
			mu.Lock()
			matches = append(matches, kept...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sortMatches(matches)
	return Result{Matches: matches, RateLimited: rateLimited}
}

// filterToDay drops edge-of-window spillover the upstream may return.
func filterToDay(raws []providers.RawMatch, window timeutil.Window) []providers.RawMatch {
	kept := raws[:0]
	for _, raw := range raws {
		if window.SameLocalDay(raw.Kickoff) {
			kept = append(kept, raw)
		}
	}
	return kept
}

// sortMatches gives the aggregate a stable order regardless of which league
// fetch finished first.
func sortMatches(raws []providers.RawMatch) {
	sort.Slice(raws, func(i, j int) bool {
		if !raws[i].Kickoff.Equal(raws[j].Kickoff) {
			return raws[i].Kickoff.Before(raws[j].Kickoff)
		}
		return raws[i].MatchID < raws[j].MatchID
	})
}
