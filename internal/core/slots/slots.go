// Package slots maps wall-clock time to the content type on display.
// A Resolver owns an ordered partition of the 1440-minute day; slots may
// wrap midnight. The partition is exhaustive and non-overlapping whether it
// comes from the fixed table or from the dynamic builder
package slots

import (
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
)

const minutesPerDay = 24 * 60

// boundaries shared by the fixed table and the dynamic builder
const (
	morningStart = 5 * 60        // 05:00
	morningEnd   = 8*60 - 1      // 07:59
	eveningStart = 23*60 + 59    // 23:59
	eveningEnd   = 5*60 - 1      // 04:59, wraps midnight
	optionalLo   = 8 * 60        // 08:00
	optionalHi   = 23*60 + 58    // 23:58
)

// Slot is one contiguous range of minutes-of-day mapped to a content type.
// Start > End denotes a wrap-around slot
type Slot struct {
	Type  catalog.Type
	Start int
	End   int
	Name  string // slot display name, e.g. 早安时段
}

// Default is the synthetic slot returned when no configured slot matches
var Default = Slot{Type: "", Start: 0, End: minutesPerDay - 1, Name: "默认时段"}

// slotNames maps a content type to its slot display name
var slotNames = map[catalog.Type]string{
	catalog.TypeMorning:  "早安时段",
	catalog.TypeMaxim:    "格言时段",
	catalog.TypeJoke:     "笑话时段",
	catalog.TypeSentence: "名句时段",
	catalog.TypeCouplet:  "对联时段",
	catalog.TypeHistory:  "历史时段",
	catalog.TypePoetry:   "唐诗时段",
	catalog.TypeSongci:   "宋词时段",
	catalog.TypeYuanqu:   "元曲时段",
	catalog.TypeEvening:  "晚安时段",
}

// SlotName returns the display name for t's slot, or the default name
func SlotName(t catalog.Type) string {
	if n, ok := slotNames[t]; ok {
		return n
	}
	return Default.Name
}

// Resolver resolves a minute-of-day to exactly one slot
type Resolver struct {
	slots []Slot
}

// Matches reports whether minute m falls inside s, wrap-aware
func (s Slot) Matches(m int) bool {
	if s.Start > s.End {
		return m >= s.Start || m <= s.End
	}
	return m >= s.Start && m <= s.End
}

// Resolve returns the slot containing minute m, or Default
func (r *Resolver) Resolve(m int) Slot {
	for _, s := range r.slots {
		if s.Matches(m) {
			return s
		}
	}
	return Default
}

// ResolveAt resolves the local wall-clock minute of t
func (r *Resolver) ResolveAt(t time.Time) Slot {
	return r.Resolve(t.Hour()*60 + t.Minute())
}

// Slots returns the partition in match order
func (r *Resolver) Slots() []Slot {
	out := make([]Slot, len(r.slots))
	copy(out, r.slots)
	return out
}

func mk(t catalog.Type, start, end int) Slot {
	return Slot{Type: t, Start: start, End: end, Name: SlotName(t)}
}

// NewFixed returns the resolver for the full catalog: ten slots with the
// historical boundaries, evening wrapping midnight
func NewFixed() *Resolver {
	return &Resolver{slots: []Slot{
		mk(catalog.TypeMorning, morningStart, morningEnd),
		mk(catalog.TypeMaxim, 8*60, 10*60-1),
		mk(catalog.TypeJoke, 10*60, 12*60-1),
		mk(catalog.TypeSentence, 12*60, 14*60-1),
		mk(catalog.TypeCouplet, 14*60, 16*60-1),
		mk(catalog.TypeHistory, 16*60, 18*60-1),
		mk(catalog.TypePoetry, 18*60, 20*60-1),
		mk(catalog.TypeSongci, 20*60, 22*60-1),
		mk(catalog.TypeYuanqu, 22*60, optionalHi),
		mk(catalog.TypeEvening, eveningStart, eveningEnd),
	}}
}

// NewDynamic builds a partition for an enabled subset: the mandatory
// greetings keep their fixed boundary slots and the optional span
// [08:00, 23:58] is divided evenly among the remaining enabled types in
// list order, the last slot absorbing the remainder. With no optional
// types the morning slot absorbs the span, leaving a two-slot day
func NewDynamic(enabled []catalog.Type) *Resolver {
	var optional []catalog.Type
	for _, t := range enabled {
		d, ok := catalog.Lookup(t)
		if !ok || d.Mandatory {
			continue
		}
		optional = append(optional, t)
	}

	if len(optional) == 0 {
		return &Resolver{slots: []Slot{
			mk(catalog.TypeMorning, morningStart, optionalHi),
			mk(catalog.TypeEvening, eveningStart, eveningEnd),
		}}
	}

	slots := make([]Slot, 0, len(optional)+2)
	slots = append(slots, mk(catalog.TypeMorning, morningStart, morningEnd))

	span := optionalHi - optionalLo + 1
	width := span / len(optional)
	start := optionalLo
	for i, t := range optional {
		end := start + width - 1
		if i == len(optional)-1 {
			end = optionalHi
		}
		slots = append(slots, mk(t, start, end))
		start = end + 1
	}

	slots = append(slots, mk(catalog.TypeEvening, eveningStart, eveningEnd))
	return &Resolver{slots: slots}
}
