package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the service.
type Config struct {
	Provider      string
	Leagues       []League
	ReferenceTZ   string
	CacheDuration Duration
	Scheduler     SchedulerConfig
	FootballData  FootballDataConfig
	Metrics       MetricsConfig
}

// SchedulerConfig controls the refresh loop cadence.
type SchedulerConfig struct {
	BaseInterval Duration
	FastInterval Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A local .env file, when present, is loaded first.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Provider:      envOrDefault(envProvider, defaultProvider),
		Leagues:       leaguesEnvOrDefault(envLeagues),
		ReferenceTZ:   envOrDefault(envReferenceTZ, defaultReferenceTZ),
		CacheDuration: durationEnvOrDefault(envCacheDuration, defaultCacheDuration),
		Scheduler: SchedulerConfig{
			BaseInterval: durationEnvOrDefault(envBaseInterval, defaultBaseInterval),
			FastInterval: durationEnvOrDefault(envFastInterval, defaultFastInterval),
		},
		FootballData: loadFootballData(),
		Metrics:      loadMetrics(),
	}
}
