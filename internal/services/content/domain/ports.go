package domain

import (
	"context"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/core/present"
)

// ReaderPort reads unit snapshots
type ReaderPort interface {
	Snapshots() []Snapshot
	Snapshot(t catalog.Type) (Snapshot, error)
	Enabled() []catalog.Type
}

// RefreshPort triggers one refresh cycle for a unit
type RefreshPort interface {
	Refresh(ctx context.Context, t catalog.Type) error
}

// CachePort exposes the shared payload cache to the highlight units
type CachePort interface {
	// Cached returns the last good envelope for t, fresh or stale
	Cached(t catalog.Type) (present.Envelope, bool)

	// Ready reports whether every listed type has a usable cached result
	Ready(types []catalog.Type) bool
}
