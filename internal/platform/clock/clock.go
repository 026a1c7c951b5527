// Package clock provides a swappable time source for schedulers
//
// Production code takes a Clock so tests can drive timers deterministically
// instead of sleeping
package clock

import (
	"sync"
	"time"
)

// CancelFunc stops a pending timer. It reports whether the timer was
// stopped before firing
type CancelFunc func() bool

// Clock is the minimal time surface the schedulers need
type Clock interface {
	// Now returns the current wall-clock time
	Now() time.Time

	// AfterFunc runs f on its own goroutine after d has elapsed
	AfterFunc(d time.Duration, f func()) CancelFunc
}

// System is the real clock backed by the time package
type System struct{}

// Now implements Clock
func (System) Now() time.Time { return time.Now() }

// AfterFunc implements Clock
func (System) AfterFunc(d time.Duration, f func()) CancelFunc {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// Manual is a hand-cranked clock for tests. Time only moves when the test
// calls Advance or Set, and due timers fire synchronously on the caller's
// goroutine in deadline order
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Time
	seq     int
	fn      func()
	stopped bool
}

// NewManual returns a Manual clock frozen at the given instant
func NewManual(at time.Time) *Manual {
	return &Manual{now: at}
}

// Now implements Clock
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc implements Clock
func (m *Manual) AfterFunc(d time.Duration, f func()) CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{at: m.now.Add(d), seq: m.seq, fn: f}
	m.timers = append(m.timers, t)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the window
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()
	m.Set(target)
}

// Set jumps the clock to the given instant, firing due timers. Moving
// backwards only shifts Now and fires nothing
func (m *Manual) Set(at time.Time) {
	for {
		t := m.popDue(at)
		if t == nil {
			break
		}
		t.fn()
	}
	m.mu.Lock()
	m.now = at
	m.mu.Unlock()
}

// popDue removes and returns the earliest unfired timer at or before the
// target, advancing now to its deadline so callbacks observe consistent time
func (m *Manual) popDue(target time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	var best *manualTimer
	bestIdx := -1
	for i, t := range m.timers {
		if t.stopped || t.at.After(target) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best, bestIdx = t, i
		}
	}
	if best == nil {
		return nil
	}
	m.timers = append(m.timers[:bestIdx], m.timers[bestIdx+1:]...)
	if best.at.After(m.now) {
		m.now = best.at
	}
	return best
}

// Pending reports how many unfired timers are queued
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
