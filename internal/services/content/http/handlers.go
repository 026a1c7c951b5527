// Package http provides http transport for the content units
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/modkit/httpkit"
	"github.com/lambilly/hass-tian-free/internal/services/content/domain"
)

// Ports are the handler dependencies
type Ports struct {
	Reader  domain.ReaderPort
	Refresh domain.RefreshPort
}

// Register mounts content endpoints on the given router
func Register(r httpkit.Router, p Ports) {
	h := &handlers{ports: p}

	// published unit snapshots
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{type}", h.get)

	// manual refresh trigger
	httpkit.Post(r, "/{type}/refresh", h.refresh)
}

type handlers struct{ ports Ports }

// ListResponse wraps the full snapshot list
// swagger:model
type ListResponse struct {
	Sensors []domain.Snapshot `json:"sensors"`
}

// swagger:route GET /sensors Content contentList
// @Summary List all enabled unit snapshots
// @Tags Content
// @Produce json
// @Success 200 type ListResponse "ok"
// @Router /sensors [get]
func (h *handlers) list(_ *stdhttp.Request) (any, error) {
	return ListResponse{Sensors: h.ports.Reader.Snapshots()}, nil
}

// swagger:route GET /sensors/{type} Content contentGet
// @Summary Get one unit snapshot
// @Tags Content
// @Produce json
// @Param type path string true "content type key"
// @Success 200 type domain.Snapshot "ok"
// @Router /sensors/{type} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	snap, err := h.ports.Reader.Snapshot(typeParam(r))
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// swagger:route POST /sensors/{type}/refresh Content contentRefresh
// @Summary Force one refresh cycle for a unit
// @Tags Content
// @Produce json
// @Param type path string true "content type key"
// @Success 200 type domain.Snapshot "ok"
// @Router /sensors/{type}/refresh [post]
func (h *handlers) refresh(r *stdhttp.Request) (any, error) {
	t := typeParam(r)
	if err := h.ports.Refresh.Refresh(r.Context(), t); err != nil {
		return nil, err
	}
	snap, err := h.ports.Reader.Snapshot(t)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func typeParam(r *stdhttp.Request) catalog.Type {
	return catalog.Type(chi.URLParam(r, "type"))
}
