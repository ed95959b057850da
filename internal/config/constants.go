package config

import "time"

const (
	envProvider      = "PROVIDER"
	envLeagues       = "LEAGUES"
	envReferenceTZ   = "REFERENCE_TZ"
	envCacheDuration = "CACHE_DURATION"
	envBaseInterval  = "BASE_INTERVAL"
	envFastInterval  = "FAST_INTERVAL"
	envAPIKey        = "FOOTBALL_DATA_API_KEY"
	envBaseURL       = "FOOTBALL_DATA_BASE_URL"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultProvider    = "fixture"
	defaultReferenceTZ = "Europe/London"
	// Freshness horizon for reusing a cached batch without refetching.
	defaultCacheDuration = 120 * Duration(time.Second)
	// Quiet cadence when nothing is live or imminent.
	defaultBaseInterval = 5 * Duration(time.Minute)
	// Cadence while a match is in play or about to kick off.
	defaultFastInterval = 1 * Duration(time.Minute)
	defaultMetricsPort  = "9090"
)

// defaultLeagues covers the competitions tracked when LEAGUES is unset.
var defaultLeagues = []League{
	{Name: "Premier League", Code: "PL"},
	{Name: "Championship", Code: "ELC"},
	{Name: "Champions League", Code: "CL"},
}
