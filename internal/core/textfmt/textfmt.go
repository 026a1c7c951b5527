// Package textfmt shapes fetched Chinese text for display
// Two concerns live here
// 1 sentence breaks insert a break token after 。 ？ ！ collapse doubles trim the trailing one
// 2 emoji stripping removes the common emoji blocks from display titles
package textfmt

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// MarkupBreak is the break token used by the markup rendering
const MarkupBreak = "<br>"

// sentence-ending marks that trigger a break
const breakMarks = "。？！"

// Breaks inserts sep after every sentence-ending mark, collapses doubled
// separators and trims a trailing one so the text never ends on a break
func Breaks(s, sep string) string {
	if s == "" || sep == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(sep)*4)
	for _, r := range s {
		b.WriteRune(r)
		if strings.ContainsRune(breakMarks, r) {
			b.WriteString(sep)
		}
	}
	out := b.String()
	double := sep + sep
	for strings.Contains(out, double) {
		out = strings.ReplaceAll(out, double, sep)
	}
	return strings.TrimSuffix(out, sep)
}

// Markup renders s with markup break tokens
func Markup(s string) string { return Breaks(s, MarkupBreak) }

// Plain renders s with newline breaks
func Plain(s string) string { return Breaks(s, "\n") }

// emojiTable covers the blocks stripped from titles:
// emoticons, misc symbols and pictographs, transport and map,
// and regional indicators (flags)
var emojiTable = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
	},
}

// pool of fresh strip transformers
var stripPool = sync.Pool{
	New: func() any {
		return runes.Remove(runes.In(emojiTable))
	},
}

// StripEmoji removes the emoji blocks above and trims surrounding whitespace
func StripEmoji(s string) string {
	if s == "" {
		return ""
	}
	tr := stripPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	stripPool.Put(tr)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(ns)
}
