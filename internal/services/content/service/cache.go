package service

import (
	"sync"
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/core/present"
)

// DefaultTTL is the shared cache lifetime for every content type
const DefaultTTL = 43200 * time.Second

type entry struct {
	env       present.Envelope
	fetchedAt time.Time
}

// Cache holds the last successful envelope per content type. Replacement
// is atomic per key; overlapping refreshes are tolerated, last writer wins.
// A stale entry is kept until a newer success replaces it so the composite
// units can keep showing the previous value
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[catalog.Type]entry
}

// NewCache builds a Cache with the given TTL (DefaultTTL when zero)
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[catalog.Type]entry),
	}
}

// Fresh returns the envelope for t only while its TTL has not elapsed
func (c *Cache) Fresh(t catalog.Type) (present.Envelope, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[t]
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		return present.Envelope{}, false
	}
	return e.env, true
}

// Peek returns the last good envelope for t regardless of age
func (c *Cache) Peek(t catalog.Type) (present.Envelope, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[t]
	return e.env, ok
}

// Put stores a successful envelope for t
func (c *Cache) Put(t catalog.Type, env present.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[t] = entry{env: env, fetchedAt: c.now()}
}

// Ready reports whether every listed type has a cached envelope with a
// non-empty result
func (c *Cache) Ready(types []catalog.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range types {
		e, ok := c.entries[t]
		if !ok || !e.env.HasResult() {
			return false
		}
	}
	return true
}
