package tracer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"

	"github.com/FACorreiaa/go-trip-planner/internal/pkg/config"
)

// InitOtelProviders installs the global tracer and meter providers described
// by cfg and starts the Prometheus scrape server. The returned function stops
// all three.
func InitOtelProviders(cfg config.ObservabilityConfig, logger *zap.Logger) (func(context.Context) error, error) {
	res := newResource(cfg)

	tp := newTracerProvider(cfg, res, logger)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	promExporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(promExporter),
	)
	otel.SetMeterProvider(mp)

	metricsServer := &http.Server{Addr: cfg.MetricsAddr, Handler: MetricsHandler(cfg.MetricsPath)}
	go func() {
		logger.Info("Starting Prometheus metrics server",
			zap.String("addr", cfg.MetricsAddr),
			zap.String("path", cfg.MetricsPath),
		)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	return func(ctx context.Context) error {
		var shutdownErr error
		if err := metricsServer.Shutdown(ctx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("metrics server shutdown error: %w", err))
		}
		if err := mp.Shutdown(ctx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("OTel Meter Provider shutdown error: %w", err))
		}
		if err := tp.Shutdown(ctx); err != nil {
			shutdownErr = errors.Join(shutdownErr, fmt.Errorf("OTel Tracer Provider shutdown error: %w", err))
		}
		return shutdownErr
	}, nil
}

func newResource(cfg config.ObservabilityConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)
}

// newSampler keeps the parent's decision and samples root spans at ratio.
func newSampler(ratio float64) sdktrace.Sampler {
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// newTracerProvider exports over OTLP/HTTP when an endpoint is configured.
// Spans are still created without one, so trace ids reach the request logs.
func newTracerProvider(cfg config.ObservabilityConfig, res *resource.Resource, logger *zap.Logger) *sdktrace.TracerProvider {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.TraceSampleRatio)),
	}
	if cfg.OTLPEndpoint == "" {
		logger.Info("OTLP endpoint not set, traces are not exported")
		return sdktrace.NewTracerProvider(opts...)
	}

	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithEndpoint(cfg.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("Failed to create OTLP trace exporter, traces are not exported", zap.Error(err))
		return sdktrace.NewTracerProvider(opts...)
	}
	return sdktrace.NewTracerProvider(append(opts, sdktrace.WithBatcher(exporter))...)
}

// MetricsHandler serves the Prometheus registry at path.
func MetricsHandler(path string) http.Handler {
	r := gin.New()
	r.GET(path, gin.WrapH(promhttp.Handler()))
	return r
}
