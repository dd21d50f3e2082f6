// resolver/cache.go
package resolver

import (
	"sync"
	"time"

	"github.com/sapictureday/sail/model"
)

type entry struct {
	value    *model.Workspace
	cachedAt time.Time
}

// Cache is the process-wide TTL map behind workspace resolution. Entries are
// immutable once written; recomputation replaces the entry rather than
// mutating it, so a reader never observes a partial update. A nil value is a
// valid cached result: it rate-limits fruitless lookups to one per window.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key. The second return is false when the
// key is absent or the entry has outlived the TTL.
func (c *Cache) Get(key string) (*model.Workspace, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.cachedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the current timestamp.
func (c *Cache) Set(key string, value *model.Workspace) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, cachedAt: time.Now()}
	c.mu.Unlock()
}

// ClearAll purges every entry. There is no per-key invalidation; a cleared
// cache repopulates lazily on the next Resolve.
func (c *Cache) ClearAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports the number of entries, live or expired.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
