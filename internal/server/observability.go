package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/app/observability/tracer"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability initializes OpenTelemetry and application metrics
func InitObservability(cfg config.ObservabilityConfig, logger *zap.Logger) (ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics.InitAppMetrics()
	logger.Info("Observability initialized",
		zap.String("metrics_endpoint", cfg.MetricsAddr+cfg.MetricsPath),
		zap.String("service_version", cfg.ServiceVersion),
		zap.Float64("trace_sample_ratio", cfg.TraceSampleRatio),
		zap.String("otlp_endpoint", cfg.OTLPEndpoint),
	)

	return otelShutdown, nil
}
