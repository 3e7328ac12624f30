package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/bikram73/Netflix-Clone/internal/infra/config"
)

const namespace = "netflix"

// Provider owns the metrics registry and, when an OTLP endpoint is configured, the tracer provider.
type Provider struct {
	registry *prometheus.Registry
	tracing  *TracerProvider

	authOutcomes     *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// Attach configures telemetry exporters and returns a provider handle.
func Attach(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p, err := newProvider()
	if err != nil {
		return nil, err
	}

	if cfg.Telemetry.OTLPEndpoint == "" {
		logger.Info("otlp endpoint not configured, tracing disabled")
		return p, nil
	}

	tracing, err := NewTracerProvider(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	p.tracing = tracing

	return p, nil
}

func newProvider() (*Provider, error) {
	registry := prometheus.NewRegistry()

	p := &Provider{
		registry: registry,
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Signup and login attempts partitioned by operation and outcome.",
		}, []string{"operation", "outcome"}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "upstream_requests_total",
			Help:      "Requests to the movie metadata API partitioned by operation and outcome.",
		}, []string{"operation", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "metadata",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of movie metadata API requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.authOutcomes,
		p.upstreamRequests,
		p.upstreamDuration,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}

	return p, nil
}

// Registry exposes the registry backing the /metrics endpoint.
func (p *Provider) Registry() *prometheus.Registry {
	return p.registry
}

// AuthAttempt counts a signup or login outcome.
func (p *Provider) AuthAttempt(operation, outcome string) {
	if p == nil {
		return
	}
	p.authOutcomes.WithLabelValues(operation, outcome).Inc()
}

// UpstreamRequest records one call to the metadata API.
func (p *Provider) UpstreamRequest(operation, outcome string, seconds float64) {
	if p == nil {
		return
	}
	p.upstreamRequests.WithLabelValues(operation, outcome).Inc()
	p.upstreamDuration.WithLabelValues(operation).Observe(seconds)
}

// TracingEnabled reports whether spans are exported.
func (p *Provider) TracingEnabled() bool {
	return p != nil && p.tracing != nil
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tracing == nil {
		return nil
	}
	var errs []error
	if err := p.tracing.ForceFlush(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := p.tracing.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
