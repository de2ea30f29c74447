// Package lootdata provides the process-wide loot-table cache (spec §5
// "Shared resources"): lazily initialized on first use, read-only
// thereafter, with single-flight semantics so concurrent first-use
// requests share one inflight fetch instead of stampeding the source.
package lootdata

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/andrescamacho/egg-planner/internal/domain/mission"
)

// Fetcher retrieves the current loot-table document from wherever it is
// authored (an HTTP endpoint in production, a fixed in-memory value in
// tests).
type Fetcher interface {
	Fetch(ctx context.Context) (mission.LootData, error)
}

const cacheKey = "lootdata"

// Cache wraps a Fetcher with a single cached copy and single-flight
// deduplication. It never expires the cached value on its own: loot
// tables change on game updates, not on a clock, so callers that need a
// refresh call Invalidate explicitly.
type Cache struct {
	fetcher Fetcher

	mu     sync.RWMutex
	data   mission.LootData
	loaded bool

	group singleflight.Group
}

// NewCache builds a Cache around fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Fetch implements planservice.LootDataProvider. The first call blocks on
// fetcher; every later call (and every concurrent caller racing the
// first) returns the cached value once it lands.
func (c *Cache) Fetch(ctx context.Context) (mission.LootData, error) {
	if data, ok := c.cached(); ok {
		return data, nil
	}

	v, err, _ := c.group.Do(cacheKey, func() (interface{}, error) {
		if data, ok := c.cached(); ok {
			return data, nil
		}
		data, err := c.fetcher.Fetch(ctx)
		if err != nil {
			return mission.LootData{}, err
		}
		c.store(data)
		return data, nil
	})
	if err != nil {
		return mission.LootData{}, err
	}
	return v.(mission.LootData), nil
}

// Invalidate drops the cached value, forcing the next Fetch to go back
// to the source.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

func (c *Cache) cached() (mission.LootData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data, c.loaded
}

func (c *Cache) store(data mission.LootData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.loaded = true
}
