package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal       metric.Int64Counter
	HTTPRequestDuration     metric.Float64Histogram
	SuggestionLookupsTotal  metric.Int64Counter
	SuggestionFailuresTotal metric.Int64Counter
	GenerationsTotal        metric.Int64Counter
	GenerationDuration      metric.Float64Histogram
	GenerationsInFlight     metric.Int64UpDownCounter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments only once, from
// the globally configured MeterProvider. When no provider was installed the
// instruments are no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("trip-planner")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.SuggestionLookupsTotal, err = meter.Int64Counter(
			"suggestion_lookups_total",
			metric.WithDescription("Total number of geocoding lookups issued"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_lookups_total: %v", err)
		}

		m.SuggestionFailuresTotal, err = meter.Int64Counter(
			"suggestion_failures_total",
			metric.WithDescription("Total number of geocoding lookups that failed"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_failures_total: %v", err)
		}

		m.GenerationsTotal, err = meter.Int64Counter(
			"trip_generations_total",
			metric.WithDescription("Total number of trip plan generations by outcome"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_generations_total: %v", err)
		}

		m.GenerationDuration, err = meter.Float64Histogram(
			"trip_generation_duration_seconds",
			metric.WithDescription("Duration of trip plan generations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_generation_duration_seconds: %v", err)
		}

		m.GenerationsInFlight, err = meter.Int64UpDownCounter(
			"trip_generations_in_flight",
			metric.WithDescription("Trip plan generations currently waiting on the generative service"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create trip_generations_in_flight: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the application instruments, initializing them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// SessionStats is a point-in-time view of the planner session store.
type SessionStats struct {
	Active int64
	Hits   int64
	Misses int64
}

// RegisterSessionStats reports the values returned by stats on every
// collection. The caller unregisters when the store goes away.
func RegisterSessionStats(stats func() SessionStats) (metric.Registration, error) {
	meter := otel.GetMeterProvider().Meter("trip-planner")

	active, err := meter.Int64ObservableGauge(
		"planner_sessions_active",
		metric.WithDescription("Planner sessions currently held in memory"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}
	hits, err := meter.Int64ObservableCounter(
		"planner_session_lookups_hit_total",
		metric.WithDescription("Session lookups that found an existing form"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	misses, err := meter.Int64ObservableCounter(
		"planner_session_lookups_miss_total",
		metric.WithDescription("Session lookups that started a fresh form"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := stats()
		o.ObserveInt64(active, s.Active)
		o.ObserveInt64(hits, s.Hits)
		o.ObserveInt64(misses, s.Misses)
		return nil
	}, active, hits, misses)
}
