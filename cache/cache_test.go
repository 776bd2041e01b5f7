package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "key", []byte("value"), time.Minute)
	raw, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte("value"), raw)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	c.Set(ctx, "key", []byte("value"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestMemoryCacheInvalidatePrefix(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	c.Set(ctx, "projects:list", []byte("a"), time.Minute)
	c.Set(ctx, "projects:my-app", []byte("b"), time.Minute)
	c.Set(ctx, "skills:list", []byte("c"), time.Minute)

	c.InvalidatePrefix(ctx, "projects:")

	_, ok := c.Get(ctx, "projects:list")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "projects:my-app")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "skills:list")
	assert.True(t, ok, "other prefixes are untouched")
}

func TestThroughFillsOnMissAndServesFromCache(t *testing.T) {
	c := NewMemory()
	var sf singleflight.Group
	ctx := context.Background()

	fills := 0
	fill := func(context.Context) ([]string, error) {
		fills++
		return []string{"a", "b"}, nil
	}

	first, err := Through(ctx, c, &sf, "key", time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first)

	second, err := Through(ctx, c, &sf, "key", time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, fills, "second read must come from the cache")
}

func TestThroughDoesNotCacheErrors(t *testing.T) {
	c := NewMemory()
	var sf singleflight.Group
	ctx := context.Background()

	boom := errors.New("backend down")
	calls := 0

	_, err := Through(ctx, c, &sf, "key", time.Minute, func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	value, err := Through(ctx, c, &sf, "key", time.Minute, func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 2, calls, "the failed fill must not be cached")
}

func TestThroughTreatsCorruptEntryAsMiss(t *testing.T) {
	c := NewMemory()
	var sf singleflight.Group
	ctx := context.Background()

	c.Set(ctx, "key", []byte("{not json"), time.Minute)

	value, err := Through(ctx, c, &sf, "key", time.Minute, func(context.Context) (map[string]int, error) {
		return map[string]int{"n": 7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, value["n"])

	// The corrupt entry has been overwritten with the fresh fill.
	raw, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.JSONEq(t, `{"n":7}`, string(raw))
}

func TestThroughCollapsesConcurrentMisses(t *testing.T) {
	c := NewMemory()
	var sf singleflight.Group
	ctx := context.Background()

	var fills atomic.Int32
	release := make(chan struct{})

	fill := func(context.Context) (string, error) {
		fills.Add(1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := Through(ctx, c, &sf, "key", time.Minute, fill)
			assert.NoError(t, err)
			assert.Equal(t, "shared", value)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), fills.Load(), "concurrent misses share one fill")
}
