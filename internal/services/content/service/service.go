// Package service implements the content units: shared cache, fetch and
// retry cycle, daily refresh and the 24h poll
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
	"github.com/lambilly/hass-tian-free/internal/services/content/domain"
)

// DefaultRetryDelay is the pause before a failed mandatory-type refresh
// is attempted again
const DefaultRetryDelay = 1800 * time.Second

// DefaultPollEvery matches the host platform's 24h per-unit poll
const DefaultPollEvery = 24 * time.Hour

// Fetcher performs one API call per descriptor
type Fetcher interface {
	Fetch(ctx context.Context, d catalog.Descriptor) (present.Envelope, error)
}

// Config for the content service
type Config struct {
	// Entry is the bridge instance id; unit unique IDs derive from it
	Entry string

	// Enabled is the effective type set (mandatory types included)
	Enabled []catalog.Type

	RetryDelay time.Duration
	PollEvery  time.Duration
}

// Service owns the per-type units and their schedulers. It implements
// domain.ReaderPort, domain.RefreshPort and domain.CachePort
type Service struct {
	log     logger.Logger
	cfg     Config
	cache   *Cache
	fetcher Fetcher
	clk     clock.Clock

	order []catalog.Type
	units map[catalog.Type]*unit

	mu      sync.Mutex
	cancels map[int]clock.CancelFunc
	nextID  int
	closed  bool
}

// New constructs the content service
func New(cache *Cache, fetcher Fetcher, clk clock.Clock, cfg Config) *Service {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = DefaultPollEvery
	}
	if clk == nil {
		clk = clock.System{}
	}
	enabled := catalog.Enabled(cfg.Enabled)

	units := make(map[catalog.Type]*unit, len(enabled))
	for _, t := range enabled {
		d, _ := catalog.Lookup(t)
		units[t] = newUnit(cfg.Entry, d)
	}

	return &Service{
		log:     *logger.Named("content"),
		cfg:     cfg,
		cache:   cache,
		fetcher: fetcher,
		clk:     clk,
		order:   enabled,
		units:   units,
		cancels: make(map[int]clock.CancelFunc),
	}
}

// Start runs the first refresh cycle and arms the daily and poll timers
func (s *Service) Start(ctx context.Context) {
	s.refreshAll(ctx)
	s.scheduleDaily()
	s.schedulePoll()
}

// Close cancels every pending timer
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	cancels := s.cancels
	s.cancels = make(map[int]clock.CancelFunc)
	s.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}

// after arms a tracked one-shot timer. The entry removes itself once
// fired so only pending timers are held; a timer whose entry was removed
// by Close never runs its fn
func (s *Service) after(d time.Duration, fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	id := s.nextID
	s.nextID++
	s.cancels[id] = func() bool { return false }
	s.mu.Unlock()

	c := s.clk.AfterFunc(d, func() {
		s.mu.Lock()
		_, pending := s.cancels[id]
		delete(s.cancels, id)
		s.mu.Unlock()
		if pending {
			fn()
		}
	})

	s.mu.Lock()
	if _, pending := s.cancels[id]; pending {
		s.cancels[id] = c
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	c()
}

// Enabled implements domain.ReaderPort
func (s *Service) Enabled() []catalog.Type {
	out := make([]catalog.Type, len(s.order))
	copy(out, s.order)
	return out
}

// Snapshots implements domain.ReaderPort
func (s *Service) Snapshots() []domain.Snapshot {
	out := make([]domain.Snapshot, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, s.units[t].snapshot())
	}
	return out
}

// Snapshot implements domain.ReaderPort
func (s *Service) Snapshot(t catalog.Type) (domain.Snapshot, error) {
	if !catalog.Valid(t) {
		return domain.Snapshot{}, perr.NotFoundf("unknown content type %q", t)
	}
	u, ok := s.units[t]
	if !ok {
		return domain.Snapshot{}, perr.InvalidArgf("content type %q is not enabled", t)
	}
	return u.snapshot(), nil
}

// Refresh implements domain.RefreshPort: a manual trigger of one full
// refresh cycle. The returned error reports the fetch outcome; unit state
// is updated either way
func (s *Service) Refresh(ctx context.Context, t catalog.Type) error {
	if !catalog.Valid(t) {
		return perr.NotFoundf("unknown content type %q", t)
	}
	u, ok := s.units[t]
	if !ok {
		return perr.InvalidArgf("content type %q is not enabled", t)
	}
	return s.refreshUnit(ctx, u)
}

// Cached implements domain.CachePort
func (s *Service) Cached(t catalog.Type) (present.Envelope, bool) {
	return s.cache.Peek(t)
}

// Ready implements domain.CachePort
func (s *Service) Ready(types []catalog.Type) bool {
	return s.cache.Ready(types)
}

// refreshUnit runs one update cycle: cache hit publishes directly,
// otherwise one fetch with the outcome fed through the retry policy
func (s *Service) refreshUnit(ctx context.Context, u *unit) error {
	if env, ok := s.cache.Fresh(u.desc.Type); ok {
		u.publish(env, s.clk.Now())
		return nil
	}

	env, err := s.fetcher.Fetch(ctx, u.desc)
	if err != nil {
		s.onFailure(u, err)
		return err
	}

	s.cache.Put(u.desc.Type, env)
	u.markFetched(s.clk.Now())
	u.publish(env, s.clk.Now())
	s.log.Info().Str("unit", string(u.desc.Type)).Msg("content refreshed")
	return nil
}

// onFailure applies the retry policy: bounded delayed retries for units
// that allow them, immediate unavailability for the rest
func (s *Service) onFailure(u *unit, err error) {
	u.mu.Lock()
	canRetry := u.retries < u.desc.MaxRetries
	if canRetry {
		u.retries++
	}
	attempt := u.retries
	u.mu.Unlock()

	if canRetry {
		s.log.Warn().
			Str("unit", string(u.desc.Type)).
			Int("attempt", attempt).
			Int("max", u.desc.MaxRetries).
			Err(err).
			Msg("content refresh failed, retry scheduled")
		s.after(s.cfg.RetryDelay, func() {
			_ = s.refreshUnit(context.Background(), u)
		})
		return
	}

	u.fail(s.clk.Now())
	s.log.Error().Str("unit", string(u.desc.Type)).Err(err).Msg("content unavailable")
}

func (s *Service) refreshAll(ctx context.Context) {
	for _, t := range s.order {
		_ = s.refreshUnit(ctx, s.units[t])
	}
}

// scheduleDaily arms a timer for the next 00:01 local and rearms after
// each firing, forcing a refresh past the TTL boundary every day
func (s *Service) scheduleDaily() {
	now := s.clk.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, now.Location()).AddDate(0, 0, 1)
	delay := next.Sub(now)

	s.after(delay, func() {
		s.refreshAll(context.Background())
		s.scheduleDaily()
	})
	s.log.Info().Time("at", next).Msg("daily refresh scheduled")
}

// schedulePoll rearms the 24h poll cycle
func (s *Service) schedulePoll() {
	s.after(s.cfg.PollEvery, func() {
		s.refreshAll(context.Background())
		s.schedulePoll()
	})
}
