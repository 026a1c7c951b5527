// Package present shapes cached Tian API payloads into display fields.
// Every literal fallback here is part of the published surface; treat them
// as frozen strings
package present

import (
	"strings"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/core/textfmt"
)

// Greeting fallbacks and markers
const (
	MorningFallback = "早安！新的一天开始了！"
	EveningFallback = "晚安！好梦！"
	morningMarker   = "早安"
	eveningMarker   = "晚安"
)

// MorningText enforces the morning marker: empty text falls back, text
// missing the marker gets it prefixed
func MorningText(s string) string {
	if s == "" {
		return MorningFallback
	}
	if !strings.Contains(s, morningMarker) {
		return morningMarker + "！" + s
	}
	return s
}

// EveningText enforces the evening marker: empty text falls back, text
// missing the marker gets it suffixed
func EveningText(s string) string {
	if s == "" {
		return EveningFallback
	}
	if !strings.Contains(s, eveningMarker) {
		return s + eveningMarker + "！"
	}
	return s
}

// Attributes builds the per-unit attribute map published by the sensor of
// type t. updateTime/updateDate are supplied by the owning unit so the
// fetched-at timestamp stays stable across cache hits
func Attributes(t catalog.Type, env Envelope, updateTime, updateDate string) map[string]any {
	d, ok := catalog.Lookup(t)
	if !ok {
		return map[string]any{}
	}
	item := env.Item(d.Shape)

	attrs := map[string]any{
		"title":       d.Name,
		"code":        env.Code,
		"update_time": updateTime,
		"update_date": updateDate,
	}

	switch t {
	case catalog.TypeJoke:
		attrs["name"] = field(item, "title", "")
		attrs["content"] = field(item, "content", "")
	case catalog.TypeMorning:
		attrs["content"] = MorningText(field(item, "content", ""))
	case catalog.TypeEvening:
		attrs["content"] = EveningText(field(item, "content", ""))
	case catalog.TypePoetry:
		attrs["content"] = field(item, "content", "")
		attrs["source"] = field(item, "title", "")
		attrs["author"] = field(item, "author", "")
		attrs["intro"] = field(item, "intro", "")
		attrs["kind"] = field(item, "kind", "")
	case catalog.TypeSongci:
		attrs["content"] = field(item, "content", "")
		attrs["source"] = field(item, "source", "")
		attrs["author"] = field(item, "author", "")
	case catalog.TypeYuanqu:
		attrs["content"] = field(item, "content", "")
		attrs["source"] = field(item, "title", "")
		attrs["author"] = field(item, "author", "")
		attrs["note"] = field(item, "note", "")
		attrs["translation"] = field(item, "translation", "")
	case catalog.TypeHistory:
		attrs["content"] = field(item, "content", "暂无历史内容")
	case catalog.TypeSentence:
		attrs["content"] = field(item, "content", "暂无名句内容")
		attrs["source"] = field(item, "source", "未知来源")
	case catalog.TypeCouplet:
		attrs["content"] = field(item, "content", "暂无对联内容")
	case catalog.TypeMaxim:
		delete(attrs, "content")
		attrs["en"] = field(item, "en", "")
		attrs["zh"] = field(item, "zh", "")
	}

	return attrs
}

// Composite is the block shown by the time-slot and rotation units
type Composite struct {
	Title    string `json:"title"`
	Title2   string `json:"title2"`
	Subtitle string `json:"subtitle"`
	Content1 string `json:"content1"`
	Content2 string `json:"content2"`
	Align    string `json:"align"`
	Subalign string `json:"subalign"`
}

// Placeholder builds the composite block used when no data is available
func Placeholder(title, message string) Composite {
	return Composite{
		Title:    title,
		Title2:   title,
		Subtitle: "",
		Content1: message,
		Content2: message,
		Align:    "center",
		Subalign: "center",
	}
}

// Highlight renders the composite block for type t from its cached
// envelope. ok is false when the envelope has no usable result
func Highlight(t catalog.Type, env Envelope) (Composite, bool) {
	if !env.HasResult() {
		return Composite{}, false
	}
	d, ok := catalog.Lookup(t)
	if !ok {
		return Composite{}, false
	}
	item := env.Item(d.Shape)

	switch t {
	case catalog.TypeMorning:
		text := MorningText(field(item, "content", ""))
		return titled("🌅早安问候", "", text, text, "left"), true

	case catalog.TypeEvening:
		text := EveningText(field(item, "content", ""))
		return titled("🌃晚安问候", "", text, text, "left"), true

	case catalog.TypeMaxim:
		en := field(item, "en", "No maxim available")
		zh := field(item, "zh", "暂无格言")
		return titled("☘️英文格言", "",
			"【英文】"+en+textfmt.MarkupBreak+"【中文】"+zh,
			"【英文】"+en+"\n【中文】"+zh,
			"left"), true

	case catalog.TypeJoke:
		title := field(item, "title", "今日笑话")
		content := field(item, "content", "暂无笑话内容")
		return titled("🌻每日笑话", title, content, title+"\n"+content, "left"), true

	case catalog.TypeSentence:
		source := field(item, "source", "古籍")
		content := field(item, "content", "暂无名句内容")
		return titled("🌻古籍名句", "《"+source+"》",
			textfmt.Markup(content),
			"《"+source+"》\n"+textfmt.Plain(content),
			"center"), true

	case catalog.TypeCouplet:
		content := field(item, "content", "暂无对联内容")
		return titled("🔖经典对联", "", content, content, "center"), true

	case catalog.TypeHistory:
		content := field(item, "content", "暂无历史内容")
		return titled("🏷️简说历史", "", content, content, "left"), true

	case catalog.TypePoetry:
		sub := field(item, "author", "未知作者") + " · 《" + field(item, "title", "无题") + "》"
		content := field(item, "content", "暂无唐诗内容")
		return titled("🔖唐诗鉴赏", sub,
			textfmt.Markup(content),
			sub+"\n"+textfmt.Plain(content),
			"center"), true

	case catalog.TypeSongci:
		source := field(item, "source", "宋词")
		content := field(item, "content", "暂无宋词内容")
		return titled("🌼最美宋词", source,
			textfmt.Markup(content),
			source+"\n"+textfmt.Plain(content),
			"center"), true

	case catalog.TypeYuanqu:
		sub := field(item, "author", "未知作者") + " · 《" + field(item, "title", "无题") + "》"
		content := field(item, "content", "暂无元曲内容")
		return titled("🔖精选元曲", sub,
			textfmt.Markup(content),
			sub+"\n"+textfmt.Plain(content),
			"center"), true
	}

	return Composite{}, false
}

func titled(title, subtitle, content1, content2, align string) Composite {
	return Composite{
		Title:    title,
		Title2:   textfmt.StripEmoji(title),
		Subtitle: subtitle,
		Content1: content1,
		Content2: content2,
		Align:    align,
		Subalign: "center",
	}
}
