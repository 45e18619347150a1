package printful

import "sync"

// Cache stores resolved upstream lookups for the lifetime of the
// process. A stored nil is a valid cached value: a failed fetch is
// remembered so repeated failures short-circuit without re-fetching.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// MemoryCache is the production Cache: a process-lifetime map with no
// TTL and no invalidation. Tests substitute a fresh instance per run.
type MemoryCache struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: make(map[string]any)}
}

func (c *MemoryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *MemoryCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}
