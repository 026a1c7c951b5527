// Package catalog is the closed set of Tian API content types and their
// per-type descriptors: endpoint, display strings, extraction shape, retry
// policy and rotation eligibility. Everything downstream (fetcher, cache,
// presenter, schedulers) is driven by this table
package catalog

// Type identifies one content type
type Type string

// The fixed catalog. Morning and evening are mandatory; they are always
// enabled regardless of configuration
const (
	TypeJoke     Type = "joke"
	TypeMorning  Type = "morning"
	TypeEvening  Type = "evening"
	TypePoetry   Type = "poetry"
	TypeSongci   Type = "songci"
	TypeYuanqu   Type = "yuanqu"
	TypeHistory  Type = "history"
	TypeSentence Type = "sentence"
	TypeCouplet  Type = "couplet"
	TypeMaxim    Type = "maxim"
)

// ResultShape describes where the displayable item lives inside the
// response envelope's result field
type ResultShape uint8

const (
	// ShapeObject: result is the item itself
	ShapeObject ResultShape = iota
	// ShapeList: result carries a "list"; the first element is the item
	ShapeList
	// ShapeFlexible: result may be either an object or a bare list
	ShapeFlexible
)

// Descriptor is the full per-type configuration
type Descriptor struct {
	Type     Type
	Name     string // display name, e.g. 每日笑话
	Icon     string // mdi icon carried through as an attribute
	Endpoint string

	// query params appended when > 0
	Num  int
	Page int

	Shape ResultShape

	// MaxRetries bounds delayed retries after a failed refresh.
	// Only the mandatory greetings retry; the rest report unavailable
	// immediately. Kept per-type so the policy is data, not code
	MaxRetries int

	// Rotates marks the type as part of the rotation sequence
	Rotates bool

	// Mandatory types are force-enabled
	Mandatory bool
}

// table order is the canonical unit order and, filtered by Rotates, the
// rotation order
var table = []Descriptor{
	{
		Type: TypeJoke, Name: "每日笑话", Icon: "mdi:emoticon-lol",
		Endpoint: "https://apis.tianapi.com/joke/index",
		Num:      1, Shape: ShapeList, Rotates: true,
	},
	{
		Type: TypeMorning, Name: "早安心语", Icon: "mdi:weather-sunny",
		Endpoint: "https://apis.tianapi.com/zaoan/index",
		Shape:    ShapeObject, MaxRetries: 2, Mandatory: true,
	},
	{
		Type: TypeEvening, Name: "晚安心语", Icon: "mdi:weather-night",
		Endpoint: "https://apis.tianapi.com/wanan/index",
		Shape:    ShapeObject, MaxRetries: 2, Mandatory: true,
	},
	{
		Type: TypePoetry, Name: "唐诗鉴赏", Icon: "mdi:book-open-variant",
		Endpoint: "https://apis.tianapi.com/poetry/index",
		Shape:    ShapeList, Rotates: true,
	},
	{
		Type: TypeSongci, Name: "最美宋词", Icon: "mdi:book-music",
		Endpoint: "https://apis.tianapi.com/zmsc/index",
		Shape:    ShapeObject, Rotates: true,
	},
	{
		Type: TypeYuanqu, Name: "精选元曲", Icon: "mdi:music",
		Endpoint: "https://apis.tianapi.com/yuanqu/index",
		Num:      1, Page: 1, Shape: ShapeList, Rotates: true,
	},
	{
		Type: TypeHistory, Name: "简说历史", Icon: "mdi:calendar-clock",
		Endpoint: "https://apis.tianapi.com/pitlishi/index",
		Shape:    ShapeFlexible, Rotates: true,
	},
	{
		Type: TypeSentence, Name: "古籍名句", Icon: "mdi:format-quote-close",
		Endpoint: "https://apis.tianapi.com/gjmj/index",
		Shape:    ShapeFlexible, Rotates: true,
	},
	{
		Type: TypeCouplet, Name: "经典对联", Icon: "mdi:brush",
		Endpoint: "https://apis.tianapi.com/duilian/index",
		Shape:    ShapeFlexible, Rotates: true,
	},
	{
		Type: TypeMaxim, Name: "英文格言", Icon: "mdi:translate",
		Endpoint: "https://apis.tianapi.com/enmaxim/index",
		Shape:    ShapeFlexible, Rotates: true,
	},
}

var byType = func() map[Type]Descriptor {
	m := make(map[Type]Descriptor, len(table))
	for _, d := range table {
		m[d.Type] = d
	}
	return m
}()

// All returns the full catalog in canonical order
func All() []Descriptor {
	out := make([]Descriptor, len(table))
	copy(out, table)
	return out
}

// Lookup returns the descriptor for t
func Lookup(t Type) (Descriptor, bool) {
	d, ok := byType[t]
	return d, ok
}

// Valid reports whether t names a catalog entry
func Valid(t Type) bool {
	_, ok := byType[t]
	return ok
}

// Types returns every type in canonical order
func Types() []Type {
	out := make([]Type, 0, len(table))
	for _, d := range table {
		out = append(out, d.Type)
	}
	return out
}

// RotationOrder returns the rotation-eligible types in canonical order
func RotationOrder() []Type {
	out := make([]Type, 0, len(table))
	for _, d := range table {
		if d.Rotates {
			out = append(out, d.Type)
		}
	}
	return out
}

// Mandatory returns the force-enabled types in canonical order
func Mandatory() []Type {
	out := make([]Type, 0, 2)
	for _, d := range table {
		if d.Mandatory {
			out = append(out, d.Type)
		}
	}
	return out
}

// Optional returns the non-mandatory types in canonical order
func Optional() []Type {
	out := make([]Type, 0, len(table))
	for _, d := range table {
		if !d.Mandatory {
			out = append(out, d.Type)
		}
	}
	return out
}

// Enabled resolves a configured selection into the effective enabled set:
// mandatory types are always included, unknown names are dropped, order is
// canonical. An empty selection enables the full catalog
func Enabled(selected []Type) []Type {
	if len(selected) == 0 {
		return Types()
	}
	want := make(map[Type]bool, len(selected))
	for _, t := range selected {
		want[t] = true
	}
	out := make([]Type, 0, len(table))
	for _, d := range table {
		if d.Mandatory || want[d.Type] {
			out = append(out, d.Type)
		}
	}
	return out
}
