// Package http provides http transport for the highlight units
package http

import (
	stdhttp "net/http"

	"github.com/lambilly/hass-tian-free/internal/modkit/httpkit"
	"github.com/lambilly/hass-tian-free/internal/services/highlight/domain"
)

// Ports are the handler dependencies
type Ports struct {
	Slot     domain.SlotPort
	Rotation domain.RotationPort
}

// Register mounts highlight endpoints on the given router
func Register(r httpkit.Router, p Ports) {
	h := &handlers{ports: p}

	httpkit.Get(r, "/slot", h.slot)
	httpkit.Get(r, "/rotation", h.rotation)

	// runtime interval update
	httpkit.PutJSON[RotationConfigRequest](r, "/rotation", h.setRotation)
}

type handlers struct{ ports Ports }

// RotationConfigRequest updates the rotation interval
// swagger:model
type RotationConfigRequest struct {
	IntervalMinutes int `json:"interval_minutes" validate:"required,min=1,max=60" example:"5"`
}

// RotationConfigResponse reports the effective interval
// swagger:model
type RotationConfigResponse struct {
	IntervalMinutes int `json:"interval_minutes" example:"5"`
}

// swagger:route GET /highlight/slot Highlight highlightSlot
// @Summary Current time-slot composite snapshot
// @Tags Highlight
// @Produce json
// @Success 200 type domain.Snapshot "ok"
// @Router /highlight/slot [get]
func (h *handlers) slot(_ *stdhttp.Request) (any, error) {
	return h.ports.Slot.Snapshot(), nil
}

// swagger:route GET /highlight/rotation Highlight highlightRotation
// @Summary Current rotation composite snapshot
// @Tags Highlight
// @Produce json
// @Success 200 type domain.Snapshot "ok"
// @Router /highlight/rotation [get]
func (h *handlers) rotation(_ *stdhttp.Request) (any, error) {
	return h.ports.Rotation.Snapshot(), nil
}

// swagger:route PUT /highlight/rotation Highlight highlightSetRotation
// @Summary Change the rotation interval
// @Tags Highlight
// @Accept json
// @Produce json
// @Param payload body RotationConfigRequest true "New interval"
// @Success 200 type RotationConfigResponse "ok"
// @Router /highlight/rotation [put]
func (h *handlers) setRotation(r *stdhttp.Request, in RotationConfigRequest) (any, error) {
	if err := h.ports.Rotation.SetIntervalMinutes(r.Context(), in.IntervalMinutes); err != nil {
		return nil, err
	}
	return RotationConfigResponse{IntervalMinutes: h.ports.Rotation.IntervalMinutes()}, nil
}
