package service

import (
	"context"
	"sync"
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/core/present"
	"github.com/lambilly/hass-tian-free/internal/platform/clock"
	perr "github.com/lambilly/hass-tian-free/internal/platform/errors"
	"github.com/lambilly/hass-tian-free/internal/platform/logger"
	cdomain "github.com/lambilly/hass-tian-free/internal/services/content/domain"
	"github.com/lambilly/hass-tian-free/internal/services/highlight/domain"
)

// Rotation interval bounds in minutes
const (
	MinIntervalMinutes     = 1
	MaxIntervalMinutes     = 60
	DefaultIntervalMinutes = 5
)

// RotationUnit cycles through the enabled rotation types at a fixed
// interval, always presenting from the shared cache
type RotationUnit struct {
	log      logger.Logger
	cache    cdomain.CachePort
	clk      clock.Clock
	uniqueID string

	order []catalog.Type

	mu        sync.Mutex
	minutes   int
	idx       int
	state     string
	available bool
	attrs     map[string]any
	cancel    clock.CancelFunc
	gen       int
	closed    bool
}

// NewRotationUnit constructs the rotation unit. order is the tick sequence
// and also the readiness gate: types outside the rotation never block it
func NewRotationUnit(entry string, cache cdomain.CachePort, clk clock.Clock, order []catalog.Type, minutes int) *RotationUnit {
	if clk == nil {
		clk = clock.System{}
	}
	if minutes < MinIntervalMinutes || minutes > MaxIntervalMinutes {
		minutes = DefaultIntervalMinutes
	}
	o := make([]catalog.Type, len(order))
	copy(o, order)
	return &RotationUnit{
		log:      *logger.Named("highlight.rotation"),
		cache:    cache,
		clk:      clk,
		uniqueID: entry + "_scrolling_content",
		order:    o,
		minutes:  minutes,
		attrs:    map[string]any{},
	}
}

// Start fires an immediate tick and arms the interval timer
func (u *RotationUnit) Start() {
	u.tick()
	u.mu.Lock()
	u.schedule()
	u.mu.Unlock()
}

// Close stops the ticker
func (u *RotationUnit) Close() {
	u.mu.Lock()
	u.closed = true
	u.gen++
	cancel := u.cancel
	u.cancel = nil
	u.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// IntervalMinutes implements domain.RotationPort
func (u *RotationUnit) IntervalMinutes() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.minutes
}

// SetIntervalMinutes implements domain.RotationPort: the ticker is torn
// down and restarted so the new interval takes effect with an immediate
// tick instead of after a full stale period
func (u *RotationUnit) SetIntervalMinutes(_ context.Context, minutes int) error {
	if minutes < MinIntervalMinutes || minutes > MaxIntervalMinutes {
		return perr.InvalidArgf("interval must be %d..%d minutes, got %d",
			MinIntervalMinutes, MaxIntervalMinutes, minutes)
	}

	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return perr.Unavailablef("rotation unit is closed")
	}
	u.minutes = minutes
	u.gen++
	cancel := u.cancel
	u.cancel = nil
	u.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	u.tick()
	u.mu.Lock()
	u.schedule()
	u.mu.Unlock()

	u.log.Info().Int("minutes", minutes).Msg("rotation interval changed")
	return nil
}

// schedule arms the next tick; callers hold the mutex. The generation
// check discards callbacks from a ticker that was since torn down
func (u *RotationUnit) schedule() {
	if u.closed {
		return
	}
	gen := u.gen
	u.cancel = u.clk.AfterFunc(time.Duration(u.minutes)*time.Minute, func() {
		u.mu.Lock()
		stale := gen != u.gen
		u.mu.Unlock()
		if stale {
			return
		}
		u.tick()
		u.mu.Lock()
		u.schedule()
		u.mu.Unlock()
	})
}

// tick presents the current rotation type and advances the index only on
// success, so a missing payload is retried on the next tick
func (u *RotationUnit) tick() {
	now := u.clk.Now()

	u.mu.Lock()
	defer u.mu.Unlock()

	u.state = now.Format(dateLayout)

	if len(u.order) == 0 {
		u.available = true
		u.attrs = placeholderAttrs(domain.RotationUnitName, domain.MsgNothingEnabled, now)
		u.attrs["content_type"] = domain.UnknownContentType
		return
	}

	if !u.cache.Ready(u.order) {
		u.available = true
		u.attrs = placeholderAttrs(domain.RotationUnitName, domain.MsgWaiting, now)
		u.attrs["content_type"] = domain.UnknownContentType
		return
	}

	t := u.order[u.idx]
	env, ok := u.cache.Cached(t)
	if ok {
		var comp present.Composite
		if comp, ok = present.Highlight(t, env); ok {
			u.available = true
			u.attrs = compositeAttrs(comp)
			u.attrs["content_type"] = string(t)
			u.attrs["update_time"] = now.Format(timeLayout)
			u.attrs["update_date"] = now.Format(dateLayout)
			u.idx = (u.idx + 1) % len(u.order)
			u.log.Debug().Str("unit", string(t)).Msg("rotation content published")
			return
		}
	}

	// hold position and retry this type next tick
	u.available = true
	u.attrs = placeholderAttrs(domain.RotationUnitName, domain.MsgUnavailable, now)
	u.attrs["content_type"] = domain.UnknownContentType
}

// Snapshot implements domain.RotationPort
func (u *RotationUnit) Snapshot() cdomain.Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return cdomain.Snapshot{
		UniqueID:   u.uniqueID,
		Name:       domain.RotationUnitName,
		Icon:       domain.RotationUnitIcon,
		State:      u.state,
		Available:  u.available,
		Attributes: copyAttrs(u.attrs),
	}
}
