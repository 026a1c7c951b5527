package present

import (
	"encoding/json"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
)

// Envelope is the decoded Tian API response
type Envelope struct {
	Code   int             `json:"code"`
	Msg    string          `json:"msg"`
	Result json.RawMessage `json:"result"`
}

// HasResult reports whether the envelope carries a non-empty result.
// The composite units gate on this before rendering. The raw JSON is
// decoded so whitespace variants of empty values do not count as usable
func (e Envelope) HasResult() bool {
	if len(e.Result) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(e.Result, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	}
	return true
}

// listResult mirrors the list-bearing result variant
type listResult struct {
	List []map[string]any `json:"list"`
}

// Item extracts the displayable item from the result per the descriptor
// shape. Lists yield their first element; an empty or undecodable result
// yields an empty map so field lookups fall through to their defaults
func (e Envelope) Item(shape catalog.ResultShape) map[string]any {
	if len(e.Result) == 0 {
		return map[string]any{}
	}
	switch shape {
	case catalog.ShapeList:
		var lr listResult
		if err := json.Unmarshal(e.Result, &lr); err == nil && len(lr.List) > 0 {
			return lr.List[0]
		}
		return map[string]any{}
	case catalog.ShapeObject:
		var m map[string]any
		if err := json.Unmarshal(e.Result, &m); err == nil && m != nil {
			return m
		}
		return map[string]any{}
	default: // ShapeFlexible: object, or a bare list whose head is the item
		var m map[string]any
		if err := json.Unmarshal(e.Result, &m); err == nil && m != nil {
			return m
		}
		var l []map[string]any
		if err := json.Unmarshal(e.Result, &l); err == nil && len(l) > 0 {
			return l[0]
		}
		return map[string]any{}
	}
}

// field returns the string value of key, or def when absent or blank
func field(m map[string]any, key, def string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return def
}
