package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	c := NewRedisWithClient(client)
	t.Cleanup(func() { c.Close() })

	return c, server
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newMiniredisCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "key", []byte(`{"cached":true}`), time.Minute)

	raw, ok := c.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"cached":true}`), raw)
}

func TestRedisCacheTTL(t *testing.T) {
	c, server := newMiniredisCache(t)
	ctx := context.Background()

	c.Set(ctx, "key", []byte("value"), 5*time.Minute)

	ttl := server.TTL("key")
	assert.Equal(t, 5*time.Minute, ttl)

	server.FastForward(6 * time.Minute)
	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
}

func TestRedisCacheInvalidatePrefix(t *testing.T) {
	c, _ := newMiniredisCache(t)
	ctx := context.Background()

	c.Set(ctx, "projects:list", []byte("a"), time.Minute)
	c.Set(ctx, "projects:my-app", []byte("b"), time.Minute)
	c.Set(ctx, "contact:list", []byte("c"), time.Minute)

	c.InvalidatePrefix(ctx, "projects:")

	_, ok := c.Get(ctx, "projects:list")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "projects:my-app")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "contact:list")
	assert.True(t, ok)
}

func TestRedisCacheFailsOpen(t *testing.T) {
	c, server := newMiniredisCache(t)
	ctx := context.Background()

	server.Close()

	// A dead backend degrades to misses and dropped writes, never errors.
	_, ok := c.Get(ctx, "key")
	assert.False(t, ok)
	c.Set(ctx, "key", []byte("value"), time.Minute)
	c.InvalidatePrefix(ctx, "key")
}
