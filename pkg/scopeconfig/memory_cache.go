package scopeconfig

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/productattach/pkg/cache"
)

// DefaultMemoryCacheSize is the number of values a MemoryCache keeps.
const DefaultMemoryCacheSize = 1024

// MemoryCache caches values of another Source in process memory.
// Missing values are cached too, so unconfigured paths do not hit the
// wrapped source on every request.
type MemoryCache struct {
	next   Source
	values *cache.LRUCache[key, memoryEntry]
}

type memoryEntry struct {
	value string
	found bool
}

// NewMemoryCache wraps next, keeping each value for ttl.
func NewMemoryCache(next Source, size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}
	return &MemoryCache{
		next:   next,
		values: cache.NewLRUCache[key, memoryEntry](size, ttl),
	}
}

func (c *MemoryCache) Lookup(ctx context.Context, path string, scope Scope, scopeID int) (string, error) {
	k := newKey(path, scope, scopeID)
	if e, ok := c.values.Get(k); ok {
		if !e.found {
			return "", ErrNotFound
		}
		return e.value, nil
	}

	v, err := c.next.Lookup(ctx, path, scope, scopeID)
	switch {
	case err == nil:
		c.values.Put(k, memoryEntry{value: v, found: true})
	case errors.Is(err, ErrNotFound):
		c.values.Put(k, memoryEntry{})
	}
	return v, err
}

// Invalidate drops the cached value of one scope.
func (c *MemoryCache) Invalidate(path string, scope Scope, scopeID int) {
	c.values.Remove(newKey(path, scope, scopeID))
}

// Clear drops all cached values.
func (c *MemoryCache) Clear() {
	c.values.Clear()
}

// SetClock replaces the time source, for tests.
func (c *MemoryCache) SetClock(now func() time.Time) {
	c.values.SetClock(now)
}
