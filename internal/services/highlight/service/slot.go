// Package service implements the composite highlight units: the time-slot
// unit and the rotation sequencer. Both read the shared content cache and
// never fetch on their own
package service

import (
	"sync"
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/core/present"
	"github.com/lambilly/hass-tian-free/internal/core/slots"
	"github.com/lambilly/hass-tian-free/internal/platform/clock"
	"github.com/lambilly/hass-tian-free/internal/platform/logger"
	cdomain "github.com/lambilly/hass-tian-free/internal/services/content/domain"
	"github.com/lambilly/hass-tian-free/internal/services/highlight/domain"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"

	// slotCheckEvery is how often the slot unit re-resolves the wall clock.
	// Content only republishes on an actual slot transition
	slotCheckEvery = time.Minute
)

// SlotUnit publishes the composite block of whichever slot the wall clock
// currently falls in
type SlotUnit struct {
	log      logger.Logger
	cache    cdomain.CachePort
	resolver *slots.Resolver
	clk      clock.Clock
	uniqueID string

	// gate is the full enabled set; the unit shows the waiting placeholder
	// until every listed type has cached data
	gate []catalog.Type

	mu             sync.Mutex
	state          string
	available      bool
	attrs          map[string]any
	lastType       catalog.Type
	transitioned   bool
	lastTransition time.Time
	cancel         clock.CancelFunc
	closed         bool
}

// NewSlotUnit constructs the time-slot unit over the given partition
func NewSlotUnit(entry string, cache cdomain.CachePort, resolver *slots.Resolver, clk clock.Clock, enabled []catalog.Type) *SlotUnit {
	if clk == nil {
		clk = clock.System{}
	}
	gate := make([]catalog.Type, len(enabled))
	copy(gate, enabled)
	return &SlotUnit{
		log:      *logger.Named("highlight.slot"),
		cache:    cache,
		resolver: resolver,
		clk:      clk,
		uniqueID: entry + "_time_slot_content",
		gate:     gate,
		attrs:    map[string]any{},
	}
}

// Start evaluates once and arms the per-minute check
func (u *SlotUnit) Start() {
	u.evaluate()
	u.schedule()
}

// Close stops the check timer
func (u *SlotUnit) Close() {
	u.mu.Lock()
	u.closed = true
	cancel := u.cancel
	u.cancel = nil
	u.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (u *SlotUnit) schedule() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return
	}
	u.cancel = u.clk.AfterFunc(slotCheckEvery, func() {
		u.evaluate()
		u.schedule()
	})
}

// evaluate re-resolves the current slot and republishes only when the slot
// changed since the last check
func (u *SlotUnit) evaluate() {
	now := u.clk.Now()

	u.mu.Lock()
	defer u.mu.Unlock()

	u.state = now.Format(dateLayout)

	if !u.cache.Ready(u.gate) {
		u.setPlaceholder(now, domain.MsgWaiting)
		return
	}

	slot := u.resolver.ResolveAt(now)
	if slot.Type == "" {
		u.setPlaceholder(now, domain.MsgWaiting)
		return
	}

	if u.transitioned && slot.Type == u.lastType {
		return
	}

	env, ok := u.cache.Cached(slot.Type)
	if !ok {
		u.setPlaceholder(now, domain.MsgWaiting)
		return
	}
	comp, ok := present.Highlight(slot.Type, env)
	if !ok {
		u.setPlaceholder(now, domain.MsgWaiting)
		return
	}

	u.lastType = slot.Type
	u.transitioned = true
	u.lastTransition = now
	u.available = true
	u.attrs = compositeAttrs(comp)
	u.attrs["time_slot"] = slot.Name
	u.attrs["update_time"] = now.Format(timeLayout)
	u.attrs["update_date"] = now.Format(dateLayout)

	u.log.Debug().Str("slot", slot.Name).Str("unit", string(slot.Type)).Msg("slot content published")
}

// setPlaceholder publishes the default block; callers hold the mutex.
// A placeholder does not count as a transition, so real content is
// published as soon as the cache becomes ready
func (u *SlotUnit) setPlaceholder(now time.Time, msg string) {
	u.transitioned = false
	u.available = true
	u.attrs = placeholderAttrs(domain.SlotUnitName, msg, now)
	u.attrs["time_slot"] = slots.Default.Name
}

// Snapshot implements domain.SlotPort
func (u *SlotUnit) Snapshot() cdomain.Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return cdomain.Snapshot{
		UniqueID:   u.uniqueID,
		Name:       domain.SlotUnitName,
		Icon:       domain.SlotUnitIcon,
		State:      u.state,
		Available:  u.available,
		Attributes: copyAttrs(u.attrs),
	}
}

func compositeAttrs(c present.Composite) map[string]any {
	return map[string]any{
		"title":    c.Title,
		"title2":   c.Title2,
		"subtitle": c.Subtitle,
		"content1": c.Content1,
		"content2": c.Content2,
		"align":    c.Align,
		"subalign": c.Subalign,
	}
}

func placeholderAttrs(title, msg string, now time.Time) map[string]any {
	attrs := compositeAttrs(present.Placeholder(title, msg))
	attrs["update_time"] = now.Format(timeLayout)
	attrs["update_date"] = now.Format(dateLayout)
	return attrs
}

func copyAttrs(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
