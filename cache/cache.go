package cache

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long cached query results stay fresh.
const DefaultTTL = 5 * time.Minute

// Cache is the response-cache capability injected into every service. It is
// never a source of truth: implementations fail open, so a backend error
// surfaces as a miss on reads and a no-op on writes.
type Cache interface {
	// Get returns the cached value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// InvalidatePrefix drops every entry whose key starts with prefix.
	InvalidatePrefix(ctx context.Context, prefix string)
}

// Through reads a JSON-encoded value through c, filling it from fill on a
// miss. Concurrent misses for the same key are collapsed into a single fill.
func Through[T any](ctx context.Context, c Cache, sf *singleflight.Group, key string, ttl time.Duration, fill func(context.Context) (T, error)) (T, error) {
	var zero T

	if raw, ok := c.Get(ctx, key); ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
		// A corrupt entry is treated as a miss and overwritten below.
	}

	result, err, _ := sf.Do(key, func() (interface{}, error) {
		value, err := fill(ctx)
		if err != nil {
			return zero, err
		}
		if raw, err := json.Marshal(value); err == nil {
			c.Set(ctx, key, raw, ttl)
		}
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}
