package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CacheMetrics tracks cache performance
type CacheMetrics struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// Store is a typed, TTL-bound in-memory store. Reads slide the expiration,
// so an entry lives as long as it keeps being used.
type Store[T any] struct {
	items  *gocache.Cache
	ttl    time.Duration
	name   string
	logger *zap.Logger

	hits, misses, sets atomic.Int64
}

// NewStore creates a store whose entries expire ttl after their last use.
func NewStore[T any](ttl time.Duration, name string, logger *zap.Logger) *Store[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store[T]{
		items:  gocache.New(ttl, ttl/2),
		ttl:    ttl,
		name:   name,
		logger: logger,
	}
}

// Set stores value under key, replacing any previous entry.
func (s *Store[T]) Set(key string, value T) {
	s.items.SetDefault(key, value)
	s.sets.Add(1)

	s.logger.Debug("Cache set",
		zap.String("cache", s.name),
		zap.String("key", key),
		zap.Duration("ttl", s.ttl),
	)
}

// Get retrieves an entry and refreshes its expiration.
func (s *Store[T]) Get(key string) (T, bool) {
	raw, found := s.items.Get(key)
	if !found {
		s.misses.Add(1)
		s.logger.Debug("Cache miss",
			zap.String("cache", s.name),
			zap.String("key", key),
		)
		var zero T
		return zero, false
	}

	value, ok := raw.(T)
	if !ok {
		s.misses.Add(1)
		var zero T
		return zero, false
	}

	s.items.SetDefault(key, value)
	s.hits.Add(1)
	return value, true
}

// GetOrCreate returns the entry for key, creating it with create when absent.
// Concurrent callers for the same key observe the same value and exactly one
// of them gets created == true.
func (s *Store[T]) GetOrCreate(key string, create func() T) (value T, created bool) {
	if value, ok := s.Get(key); ok {
		return value, false
	}

	value = create()
	if err := s.items.Add(key, value, gocache.DefaultExpiration); err != nil {
		// lost the race: someone else added it first
		if existing, ok := s.Get(key); ok {
			return existing, false
		}
		s.Set(key, value)
		return value, true
	}
	s.sets.Add(1)

	s.logger.Debug("Cache created entry",
		zap.String("cache", s.name),
		zap.String("key", key),
	)
	return value, true
}

// Values returns a snapshot of the live entries. Entries past their expiration
// are left out even before the janitor removes them.
func (s *Store[T]) Values() []T {
	items := s.items.Items()
	values := make([]T, 0, len(items))
	for _, item := range items {
		if value, ok := item.Object.(T); ok {
			values = append(values, value)
		}
	}
	return values
}

// OnEvicted registers fn to run when an entry expires or is deleted.
func (s *Store[T]) OnEvicted(fn func(key string, value T)) {
	s.items.OnEvicted(func(key string, raw interface{}) {
		if value, ok := raw.(T); ok {
			fn(key, value)
		}
	})
}

// GetMetrics returns current cache metrics
func (s *Store[T]) GetMetrics() CacheMetrics {
	return CacheMetrics{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Sets:   s.sets.Load(),
	}
}
