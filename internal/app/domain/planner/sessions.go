package planner

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/location"
	"github.com/FACorreiaa/go-trip-planner/internal/app/domain/tripplan"
	"github.com/FACorreiaa/go-trip-planner/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/pkg/cache"
)

// Sessions keeps one Controller per session id in memory. Idle sessions
// expire after the configured TTL and their form state is lost.
type Sessions struct {
	store        *cache.Store[*Controller]
	suggester    location.Suggester
	planner      tripplan.Planner
	resolution   string
	logger       *zap.Logger
	inflight     sync.WaitGroup
	registration metric.Registration
}

func NewSessions(ttl time.Duration, suggester location.Suggester, planner tripplan.Planner, resolution string, logger *zap.Logger) *Sessions {
	s := &Sessions{
		store:      cache.NewStore[*Controller](ttl, "planner_sessions", logger),
		suggester:  suggester,
		planner:    planner,
		resolution: resolution,
		logger:     logger,
	}
	s.store.OnEvicted(func(key string, _ *Controller) {
		s.logger.Debug("Planner session expired", zap.String("session", key))
	})

	registration, err := metrics.RegisterSessionStats(s.Stats)
	if err != nil {
		logger.Warn("Failed to register session metrics", zap.Error(err))
	}
	s.registration = registration
	return s
}

// Get returns the controller for id, creating a fresh form when none exists.
func (s *Sessions) Get(id string) *Controller {
	ctrl, created := s.store.GetOrCreate(id, func() *Controller {
		return NewController(s.suggester, s.planner, s.logger,
			WithResolution(s.resolution),
			WithTracker(&s.inflight),
		)
	})
	if created {
		s.logger.Debug("Planner session started", zap.String("session", id))
	}
	return ctrl
}

// Len counts the sessions that have not expired.
func (s *Sessions) Len() int {
	return len(s.store.Values())
}

// Stats is read by the metrics collector. Active is derived from the live
// entries, so replaced or expired forms never leave the gauge behind.
func (s *Sessions) Stats() metrics.SessionStats {
	m := s.store.GetMetrics()
	return metrics.SessionStats{
		Active: int64(s.Len()),
		Hits:   m.Hits,
		Misses: m.Misses,
	}
}

// Close stops reporting session metrics.
func (s *Sessions) Close() error {
	if s.registration == nil {
		return nil
	}
	return s.registration.Unregister()
}

// Wait blocks until every generation started by any session has finished,
// including sessions that already expired.
func (s *Sessions) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
