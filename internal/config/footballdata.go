package config

import (
	"errors"
	"os"
)

// ErrMissingAPIKey signals that the football-data provider was selected
// without a credential. Fatal for the session; no fetch is attempted.
var ErrMissingAPIKey = errors.New("football-data API key is missing")

// FootballDataConfig carries upstream connection settings.
type FootballDataConfig struct {
	BaseURL string
	APIKey  string
}

func loadFootballData() FootballDataConfig {
	return FootballDataConfig{
		BaseURL: os.Getenv(envBaseURL),
		APIKey:  os.Getenv(envAPIKey),
	}
}

// Validate checks that the selected provider has what it needs to run.
func (c Config) Validate() error {
	if c.Provider == "footballdata" && c.FootballData.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
