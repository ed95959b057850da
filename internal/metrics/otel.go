package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and
// optional OTLP exporter. It returns a Recorder, the Prometheus HTTP handler,
// and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "matchday-service"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx                context.Context
	meter              metric.Meter
	leagueFetches      metric.Int64Counter
	leagueErrors       metric.Int64Counter
	leagueLatencyMs    metric.Float64Histogram
	rateLimitHits      metric.Int64Counter
	retryAfterMs       metric.Float64Histogram
	schedulerCycles    metric.Int64Counter
	schedulerErrors    metric.Int64Counter
	schedulerLatencyMs metric.Float64Histogram
	cacheDecisions     metric.Int64Counter
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("matchday-service")

	leagueFetches, err := meter.Int64Counter("league_fetches_total",
		metric.WithDescription("Total league fetch attempts"))
	if err != nil {
		return nil, err
	}
	leagueErrors, err := meter.Int64Counter("league_fetch_errors_total",
		metric.WithDescription("Failed league fetch attempts"))
	if err != nil {
		return nil, err
	}
	leagueLatencyMs, err := meter.Float64Histogram("league_fetch_latency_ms",
		metric.WithDescription("League fetch latency in milliseconds"))
	if err != nil {
		return nil, err
	}
	rateLimitHits, err := meter.Int64Counter("rate_limit_hits_total",
		metric.WithDescription("Upstream rate limit responses"))
	if err != nil {
		return nil, err
	}
	retryAfterMs, err := meter.Float64Histogram("rate_limit_retry_after_ms",
		metric.WithDescription("Retry-After durations reported upstream"))
	if err != nil {
		return nil, err
	}
	schedulerCycles, err := meter.Int64Counter("scheduler_cycles_total",
		metric.WithDescription("Refresh cycles driven by the scheduler"))
	if err != nil {
		return nil, err
	}
	schedulerErrors, err := meter.Int64Counter("scheduler_cycle_errors_total",
		metric.WithDescription("Refresh cycles that ended in error"))
	if err != nil {
		return nil, err
	}
	schedulerLatencyMs, err := meter.Float64Histogram("scheduler_cycle_latency_ms",
		metric.WithDescription("Refresh cycle latency in milliseconds"))
	if err != nil {
		return nil, err
	}
	cacheDecisions, err := meter.Int64Counter("cache_decisions_total",
		metric.WithDescription("Cache outcomes per decision kind"))
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:                context.Background(),
		meter:              meter,
		leagueFetches:      leagueFetches,
		leagueErrors:       leagueErrors,
		leagueLatencyMs:    leagueLatencyMs,
		rateLimitHits:      rateLimitHits,
		retryAfterMs:       retryAfterMs,
		schedulerCycles:    schedulerCycles,
		schedulerErrors:    schedulerErrors,
		schedulerLatencyMs: schedulerLatencyMs,
		cacheDecisions:     cacheDecisions,
	}, nil
}

func (o *otelInstruments) recordLeagueFetch(league string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String(AttrLeague, league))
	o.leagueFetches.Add(o.ctx, 1, attrs)
	o.leagueLatencyMs.Record(o.ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		o.leagueErrors.Add(o.ctx, 1, attrs)
	}
}

func (o *otelInstruments) recordRateLimit(league string, retryAfter time.Duration) {
	attrs := metric.WithAttributes(attribute.String(AttrLeague, league))
	o.rateLimitHits.Add(o.ctx, 1, attrs)
	if retryAfter > 0 {
		o.retryAfterMs.Record(o.ctx, float64(retryAfter.Milliseconds()), attrs)
	}
}

func (o *otelInstruments) recordSchedulerCycle(duration time.Duration, err error) {
	o.schedulerCycles.Add(o.ctx, 1)
	o.schedulerLatencyMs.Record(o.ctx, float64(duration.Milliseconds()))
	if err != nil {
		o.schedulerErrors.Add(o.ctx, 1)
	}
}

func (o *otelInstruments) recordCacheDecision(decision string) {
	o.cacheDecisions.Add(o.ctx, 1, metric.WithAttributes(attribute.String(AttrDecision, decision)))
}
