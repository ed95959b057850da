package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"matchday-service/internal/cache"
	"matchday-service/internal/config"
	"matchday-service/internal/fetch"
	"matchday-service/internal/metrics"
	"matchday-service/internal/providers"
	"matchday-service/internal/reconcile"
	"matchday-service/internal/render"
	"matchday-service/internal/scheduler"
	"matchday-service/internal/timeutil"
	"matchday-service/internal/tracker"
)

var metricsSetup = metrics.Setup

// Server ties configuration, the tracker, the scheduler, and the metrics
// endpoint together for a single run of the service.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	tracker       *tracker.Tracker
	scheduler     *scheduler.Scheduler
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and renderer wiring. It
// fails when the configuration cannot support the selected provider.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory := newProviderFactory(logger)
	return newServerWithProvider(cfg, logger, factory.build(cfg), nil), nil
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, renderer tracker.Renderer) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	loc := timeutil.ResolveLocation(cfg.ReferenceTZ)
	leagues := providerLeagues(cfg.Leagues)
	if renderer == nil {
		renderer = render.NewConsole(os.Stdout, loc)
	}

	trk := tracker.New(tracker.Config{
		Orchestrator: fetch.New(provider, leagues, logger, recorder),
		Reconciler:   reconcile.NewReconciler(reconcile.NewNormalizer(nil)),
		Cache:        cache.New(cfg.CacheDuration),
		Renderer:     renderer,
		Logger:       logger,
		Metrics:      recorder,
		Location:     loc,
	})

	sched := scheduler.New(scheduler.Config{
		Refresher:    trk,
		Logger:       logger,
		Metrics:      recorder,
		BaseInterval: cfg.Scheduler.BaseInterval,
		FastInterval: cfg.Scheduler.FastInterval,
	})

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		tracker:       trk,
		scheduler:     sched,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// Run starts the scheduler and metrics server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context) {
	s.startMetrics()
	s.scheduler.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

// Tracker exposes the tracker for read access to the current snapshot.
func (s *Server) Tracker() *tracker.Tracker {
	return s.tracker
}

// RefreshNow asks the scheduler for an immediate refresh cycle.
func (s *Server) RefreshNow() bool {
	return s.scheduler.RefreshNow()
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	srv := s.metricsServer
	go func() {
		if s.logger != nil {
			s.logger.Info("metrics server starting", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Warn("metrics server failed", "error", err)
			}
		}
	}()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.scheduler.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop scheduler", "error", err)
	}
	s.tracker.Close()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func providerLeagues(in []config.League) []providers.League {
	out := make([]providers.League, 0, len(in))
	for _, l := range in {
		out = append(out, providers.League{Name: l.Name, Code: l.Code})
	}
	return out
}
