package clock_test

import (
	"testing"
	"time"

	"github.com/lambilly/hass-tian-free/internal/platform/clock"
)

func at(h, m int) time.Time {
	return time.Date(2026, 8, 1, h, m, 0, 0, time.UTC)
}

func TestManual_AdvanceFiresDueTimers(t *testing.T) {
	t.Parallel()
	c := clock.NewManual(at(10, 0))

	fired := []string{}
	c.AfterFunc(5*time.Minute, func() { fired = append(fired, "b") })
	c.AfterFunc(1*time.Minute, func() { fired = append(fired, "a") })
	c.AfterFunc(2*time.Hour, func() { fired = append(fired, "late") })

	c.Advance(10 * time.Minute)

	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Fatalf("fired = %v, want [a b]", fired)
	}
	if got := c.Pending(); got != 1 {
		t.Fatalf("Pending = %d, want 1", got)
	}
	if !c.Now().Equal(at(10, 10)) {
		t.Fatalf("Now = %v", c.Now())
	}
}

func TestManual_CancelStopsTimer(t *testing.T) {
	t.Parallel()
	c := clock.NewManual(at(9, 0))

	fired := false
	cancel := c.AfterFunc(time.Minute, func() { fired = true })
	if !cancel() {
		t.Fatalf("first cancel should report stopped")
	}
	if cancel() {
		t.Fatalf("second cancel should report already stopped")
	}
	c.Advance(time.Hour)
	if fired {
		t.Fatalf("cancelled timer fired")
	}
}

func TestManual_CallbackSeesDeadlineTime(t *testing.T) {
	t.Parallel()
	c := clock.NewManual(at(0, 0))

	var seen time.Time
	c.AfterFunc(30*time.Minute, func() { seen = c.Now() })
	c.Advance(time.Hour)

	if !seen.Equal(at(0, 30)) {
		t.Fatalf("callback saw %v, want %v", seen, at(0, 30))
	}
}

func TestManual_RescheduleFromCallback(t *testing.T) {
	t.Parallel()
	c := clock.NewManual(at(0, 0))

	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 3 {
			c.AfterFunc(10*time.Minute, tick)
		}
	}
	c.AfterFunc(10*time.Minute, tick)

	c.Advance(time.Hour)
	if ticks != 3 {
		t.Fatalf("ticks = %d, want 3", ticks)
	}
}

func TestSystem_AfterFuncStop(t *testing.T) {
	t.Parallel()
	var c clock.System
	cancel := c.AfterFunc(time.Hour, func() { t.Error("should not fire") })
	if !cancel() {
		t.Fatalf("expected stop before fire")
	}
}
