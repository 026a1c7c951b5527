package slots

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
)

func TestFixed_Boundaries(t *testing.T) {
	t.Parallel()
	r := NewFixed()
	cases := []struct {
		minute int
		want   catalog.Type
	}{
		{0, catalog.TypeEvening},     // 00:00 inside the wrap
		{299, catalog.TypeEvening},   // 04:59 last wrapped minute
		{300, catalog.TypeMorning},   // 05:00
		{479, catalog.TypeMorning},   // 07:59
		{480, catalog.TypeMaxim},     // 08:00
		{600, catalog.TypeJoke},      // 10:00
		{720, catalog.TypeSentence},  // 12:00
		{840, catalog.TypeCouplet},   // 14:00
		{960, catalog.TypeHistory},   // 16:00
		{1080, catalog.TypePoetry},   // 18:00
		{1200, catalog.TypeSongci},   // 20:00
		{1319, catalog.TypeSongci},   // 21:59
		{1320, catalog.TypeYuanqu},   // 22:00
		{1438, catalog.TypeYuanqu},   // 23:58
		{1439, catalog.TypeEvening},  // 23:59 wrap start
	}
	for _, c := range cases {
		if got := r.Resolve(c.minute); got.Type != c.want {
			t.Errorf("Resolve(%d) = %s, want %s", c.minute, got.Type, c.want)
		}
	}
}

func TestFixed_ExhaustiveAndNonOverlapping(t *testing.T) {
	t.Parallel()
	assertPartition(t, NewFixed())
}

func TestResolveAt_UsesLocalMinute(t *testing.T) {
	t.Parallel()
	r := NewFixed()
	at := time.Date(2026, 8, 1, 10, 30, 0, 0, time.Local)
	if got := r.ResolveAt(at); got.Type != catalog.TypeJoke {
		t.Fatalf("ResolveAt(10:30) = %s, want joke", got.Type)
	}
}

func TestResolve_IdempotentWithinSlot(t *testing.T) {
	t.Parallel()
	r := NewFixed()
	a := r.Resolve(601)
	b := r.Resolve(719)
	if a.Type != b.Type || a.Name != b.Name {
		t.Fatalf("same slot resolved differently: %+v vs %+v", a, b)
	}
}

func TestDynamic_EvenSplit(t *testing.T) {
	t.Parallel()
	enabled := []catalog.Type{
		catalog.TypeMorning, catalog.TypeEvening,
		catalog.TypeJoke, catalog.TypePoetry, catalog.TypeMaxim,
	}
	r := NewDynamic(enabled)
	got := r.Slots()
	// morning + 3 optionals + evening
	if len(got) != 5 {
		t.Fatalf("slots = %+v", got)
	}

	// span 08:00..23:58 is 959 minutes; 959/3 = 319 each, remainder to last
	if got[1].Type != catalog.TypeJoke || got[1].Start != 480 || got[1].End != 798 {
		t.Fatalf("first optional slot = %+v", got[1])
	}
	if got[2].Type != catalog.TypePoetry || got[2].Start != 799 || got[2].End != 1117 {
		t.Fatalf("second optional slot = %+v", got[2])
	}
	if got[3].Type != catalog.TypeMaxim || got[3].Start != 1118 || got[3].End != 1438 {
		t.Fatalf("last optional slot should absorb the remainder: %+v", got[3])
	}

	assertPartition(t, r)
}

func TestDynamic_MandatoryOnlyDegeneratesToTwoSlots(t *testing.T) {
	t.Parallel()
	r := NewDynamic([]catalog.Type{catalog.TypeMorning, catalog.TypeEvening})
	got := r.Slots()
	if len(got) != 2 {
		t.Fatalf("slots = %+v", got)
	}
	if got[0].Type != catalog.TypeMorning || got[0].End != 1438 {
		t.Fatalf("morning should absorb the optional span: %+v", got[0])
	}
	if got[1].Type != catalog.TypeEvening || got[1].Start != 1439 || got[1].End != 299 {
		t.Fatalf("evening slot = %+v", got[1])
	}
	assertPartition(t, r)
}

func TestDynamic_RandomSubsetsExhaustive(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	optional := catalog.Optional()
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(len(optional))
		perm := rng.Perm(len(optional))
		enabled := []catalog.Type{catalog.TypeMorning, catalog.TypeEvening}
		for _, i := range perm[:n] {
			enabled = append(enabled, optional[i])
		}
		assertPartition(t, NewDynamic(enabled))
	}
}

func TestDefaultName(t *testing.T) {
	t.Parallel()
	if SlotName("weather") != "默认时段" {
		t.Fatalf("SlotName(unknown) = %q", SlotName("weather"))
	}
	if SlotName(catalog.TypeMorning) != "早安时段" {
		t.Fatalf("SlotName(morning) = %q", SlotName(catalog.TypeMorning))
	}
}

// assertPartition checks that every minute of the day matches exactly one slot
func assertPartition(t *testing.T, r *Resolver) {
	t.Helper()
	for m := 0; m < minutesPerDay; m++ {
		matches := 0
		for _, s := range r.Slots() {
			if s.Matches(m) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("minute %d matched %d slots", m, matches)
		}
	}
}
