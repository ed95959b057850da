package server

import (
	"log/slog"

	"matchday-service/internal/config"
	"matchday-service/internal/providers"
	"matchday-service/internal/providers/fixture"
	"matchday-service/internal/providers/footballdata"
)

// providerFactory assembles the provider with the shared retry wrapper.
type providerFactory struct {
	logger *slog.Logger
}

func newProviderFactory(logger *slog.Logger) providerFactory {
	return providerFactory{logger: logger}
}

func (f providerFactory) build(cfg config.Config) providers.MatchProvider {
	base := selectProvider(cfg, f.logger)
	return providers.NewRetryingProvider(base, f.logger, 0, 0)
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.MatchProvider {
	switch cfg.Provider {
	case footballdata.ProviderName:
		return footballdata.NewClient(footballdata.Config{
			BaseURL: cfg.FootballData.BaseURL,
			APIKey:  cfg.FootballData.APIKey,
		})
	case fixture.ProviderName:
		return fixture.New()
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture data", "provider", cfg.Provider)
		}
		return fixture.New()
	}
}
