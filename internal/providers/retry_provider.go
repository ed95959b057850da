package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"matchday-service/internal/timeutil"
)

const (
	defaultRetryAttempts   = 3
	defaultInitialInterval = 200 * time.Millisecond
)

// retryingProvider wraps a MatchProvider with retry/backoff behavior for
// transient transport errors. Rate limit responses are never retried; they
// must surface so the batch can be flagged and the league skipped.
type retryingProvider struct {
	inner       MatchProvider
	logger      *slog.Logger
	maxAttempts int
	initial     time.Duration
}

// NewRetryingProvider wraps the given provider with retries. If
// maxAttempts/initial are <= 0, defaults are used.
func NewRetryingProvider(inner MatchProvider, logger *slog.Logger, maxAttempts int, initial time.Duration) MatchProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultInitialInterval
	}
	return &retryingProvider{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		initial:     initial,
	}
}

func (r *retryingProvider) FetchMatches(ctx context.Context, league League, window timeutil.Window) ([]RawMatch, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.initial

	attempt := 0
	var matches []RawMatch

	operation := func() error {
		attempt++
		fetched, err := r.inner.FetchMatches(ctx, league, window)
		if err == nil {
			matches = fetched
			return nil
		}
		if _, rateLimited := AsRateLimitError(err); rateLimited {
			return backoff.Permanent(err)
		}
		if attempt < r.maxAttempts {
			r.logWarn("provider fetch retry", "league", league.Name, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)
		}
		return err
	}

	wrapped := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)
	if err := backoff.Retry(operation, wrapped); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *retryingProvider) logWarn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
