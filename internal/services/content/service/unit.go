package service

import (
	"sync"
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/core/present"
	"github.com/lambilly/hass-tian-free/internal/services/content/domain"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// unit is the state of one per-type sensor
type unit struct {
	desc     catalog.Descriptor
	uniqueID string

	mu        sync.Mutex
	state     string
	available bool
	attrs     map[string]any
	retries   int

	// lastFetch is when API data was actually fetched; update_time holds
	// this value across cache hits so it stays stable for the TTL window
	lastFetch time.Time
	fetched   bool
}

func newUnit(entry string, d catalog.Descriptor) *unit {
	return &unit{
		desc:     d,
		uniqueID: entry + "_" + string(d.Type),
		state:    domain.StateWaiting,
		attrs:    map[string]any{},
	}
}

// markFetched records a successful API fetch
func (u *unit) markFetched(now time.Time) {
	u.mu.Lock()
	u.lastFetch = now
	u.fetched = true
	u.mu.Unlock()
}

// publish shapes env into the published attributes and marks the unit
// available; the retry counter resets on any success
func (u *unit) publish(env present.Envelope, now time.Time) {
	u.mu.Lock()
	defer u.mu.Unlock()

	updateTime := now.Format(timeLayout)
	if u.fetched {
		updateTime = u.lastFetch.Format(timeLayout)
	}
	date := now.Format(dateLayout)

	u.attrs = present.Attributes(u.desc.Type, env, updateTime, date)
	u.state = date
	u.available = true
	u.retries = 0
}

// fail marks the unit unavailable. Retry-enabled units switch to the
// failure state string; the rest keep the date state
func (u *unit) fail(now time.Time) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.available = false
	if u.desc.MaxRetries > 0 {
		u.state = domain.StateFailed
	} else {
		u.state = now.Format(dateLayout)
	}
}

// snapshot returns the published view
func (u *unit) snapshot() domain.Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()

	attrs := make(map[string]any, len(u.attrs))
	for k, v := range u.attrs {
		attrs[k] = v
	}
	return domain.Snapshot{
		UniqueID:   u.uniqueID,
		Name:       u.desc.Name,
		Icon:       u.desc.Icon,
		State:      u.state,
		Available:  u.available,
		Attributes: attrs,
	}
}
