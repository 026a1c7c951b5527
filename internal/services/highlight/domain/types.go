// Package domain defines the types and interfaces for the highlight service
package domain

import (
	"context"

	cdomain "github.com/lambilly/hass-tian-free/internal/services/content/domain"
)

// Display names and icons of the two composite units
const (
	SlotUnitName = "时段内容"
	SlotUnitIcon = "mdi:calendar-clock"

	RotationUnitName = "滚动内容"
	RotationUnitIcon = "mdi:message-text"
)

// Placeholder messages published when no content can be shown
const (
	// MsgWaiting is shown until every enabled type has cached data
	MsgWaiting = "等待数据加载，请稍后查看"

	// MsgUnavailable is shown when the current rotation type has no usable
	// cached payload; the sequencer holds its position
	MsgUnavailable = "无法获取内容数据"

	// MsgNothingEnabled is shown when the rotation list is empty
	MsgNothingEnabled = "无可用内容类型"
)

// UnknownContentType is the content_type attribute of a placeholder block
const UnknownContentType = "unknown"

// SlotPort reads the time-slot unit
type SlotPort interface {
	Snapshot() cdomain.Snapshot
}

// RotationPort reads and reconfigures the rotation unit
type RotationPort interface {
	Snapshot() cdomain.Snapshot

	// IntervalMinutes returns the current tick interval
	IntervalMinutes() int

	// SetIntervalMinutes restarts the ticker with a new interval (1..60)
	// and fires an immediate tick
	SetIntervalMinutes(ctx context.Context, minutes int) error
}
