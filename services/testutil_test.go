package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDBSeq distinguishes databases when a single test opens more than one.
var testDBSeq atomic.Int64

// newTestDatabase opens a fresh in-memory database, migrated and namespaced
// per test so parallel tests do not share state.
func newTestDatabase(t *testing.T) database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", t.Name(), testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	return database.New(db)
}

// spyCache wraps an in-memory store and records invalidations so tests can
// assert cache behavior without inspecting internals.
type spyCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	Invalidated []string
	Sets        int
	Hits        int
	Misses      int
}

func newSpyCache() *spyCache {
	return &spyCache{entries: map[string][]byte{}}
}

func (c *spyCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[key]
	if ok {
		c.Hits++
	} else {
		c.Misses++
	}
	return value, ok
}

func (c *spyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
	c.Sets++
}

func (c *spyCache) InvalidatePrefix(ctx context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Invalidated = append(c.Invalidated, prefix)
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
