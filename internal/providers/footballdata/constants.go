package footballdata

import "time"

const (
	// ProviderName keys this provider's status table and raw matches.
	ProviderName = "footballdata"

	defaultBaseURL     = "https://api.football-data.org/v4"
	defaultHTTPTimeout = 10 * time.Second
)
