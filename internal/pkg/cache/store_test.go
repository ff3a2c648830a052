package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestStore_SetGet(t *testing.T) {
	store := NewStore[string](time.Minute, "test", zaptest.NewLogger(t))

	_, found := store.Get("missing")
	assert.False(t, found)

	store.Set("k", "v")
	value, found := store.Get("k")
	assert.True(t, found)
	assert.Equal(t, "v", value)

	metrics := store.GetMetrics()
	assert.Equal(t, int64(1), metrics.Hits)
	assert.Equal(t, int64(1), metrics.Misses)
	assert.Equal(t, int64(1), metrics.Sets)
}

func TestStore_Expires(t *testing.T) {
	store := NewStore[int](20*time.Millisecond, "short", nil)
	store.Set("k", 1)

	time.Sleep(50 * time.Millisecond)

	_, found := store.Get("k")
	assert.False(t, found)
}

func TestStore_GetOrCreateReturnsSameValue(t *testing.T) {
	store := NewStore[*int](time.Minute, "shared", nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []*int
		created int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, isNew := store.GetOrCreate("session", func() *int { n := 0; return &n })
			mu.Lock()
			results = append(results, v)
			if isNew {
				created++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, 1, created)
	assert.Len(t, store.Values(), 1)
}

func TestStore_ValuesSkipExpiredEntries(t *testing.T) {
	store := NewStore[string](time.Hour, "misc", nil)
	store.Set("a", "1")
	store.Set("b", "2")
	assert.ElementsMatch(t, []string{"1", "2"}, store.Values())

	short := NewStore[string](20*time.Millisecond, "short", nil)
	short.Set("a", "1")
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, short.Values())
}
