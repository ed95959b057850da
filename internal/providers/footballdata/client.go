package footballdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"matchday-service/internal/providers"
	"matchday-service/internal/timeutil"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client fetches matches from a football-data.org shaped API. Responses are
// decoded into RawMatch without canonicalizing status or scores.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchMatches retrieves one league's matches for the query window.
func (c *Client) FetchMatches(ctx context.Context, league providers.League, window timeutil.Window) ([]providers.RawMatch, error) {
	req, err := c.buildRequest(ctx, league, window)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   ProviderName,
			League:     league.Code,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("footballdata: unexpected status %d for %s: %s",
			resp.StatusCode, league.Code, strings.TrimSpace(string(body)))
	}

	var payload matchesResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return nil, fmt.Errorf("footballdata: decode %s: %w", league.Code, decodeErr)
	}

	raws := make([]providers.RawMatch, 0, len(payload.Matches))
	for _, m := range payload.Matches {
		raws = append(raws, mapMatch(m, league))
	}
	return raws, nil
}

func (c *Client) buildRequest(ctx context.Context, league providers.League, window timeutil.Window) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/matches", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("competitions", league.Code)
	q.Set("dateFrom", window.Start)
	q.Set("dateTo", window.End)
	req.URL.RawQuery = q.Encode()

	if c.apiKey != "" {
		req.Header.Set("X-Auth-Token", c.apiKey)
	}

	return req, nil
}

func mapMatch(m matchResponse, league providers.League) providers.RawMatch {
	competition := m.Competition.Name
	if competition == "" {
		competition = league.Name
	}

	var matchID string
	if m.ID != 0 {
		matchID = fmt.Sprintf("%s-%d", ProviderName, m.ID)
	}

	kickoff, err := time.Parse(time.RFC3339, m.UTCDate)
	if err != nil {
		kickoff = time.Time{}
	}

	return providers.RawMatch{
		Provider:    ProviderName,
		MatchID:     matchID,
		Competition: competition,
		HomeName:    m.HomeTeam.Name,
		HomeCrest:   m.HomeTeam.Crest,
		AwayName:    m.AwayTeam.Name,
		AwayCrest:   m.AwayTeam.Crest,
		HomeScore:   m.Score.FullTime.Home,
		AwayScore:   m.Score.FullTime.Away,
		RawStatus:   m.Status,
		Kickoff:     kickoff.UTC(),
	}
}
