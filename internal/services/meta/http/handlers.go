// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"github.com/lambilly/hass-tian-free/internal/core/version"
	"github.com/lambilly/hass-tian-free/internal/modkit/httpkit"
)

// Integration metadata mirrored from the upstream provider
const (
	IntegrationName  = "天聚数行免费版"
	Manufacturer     = "天聚数行"
	Model            = "信息查询免费版"
	ConfigurationURL = "https://www.tianapi.com/"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	EntryID     string
	StartedAt   time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/", h.device)
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/version", h.version)
}

//
// Swagger DTOs and route docs
//

// DeviceResponse describes the bridged integration
// swagger:model
type DeviceResponse struct {
	Name             string `json:"name"              example:"天聚数行免费版"`
	Manufacturer     string `json:"manufacturer"      example:"天聚数行"`
	Model            string `json:"model"             example:"信息查询免费版"`
	Version          string `json:"version"           example:"v1.1.0"`
	ConfigurationURL string `json:"configuration_url" example:"https://www.tianapi.com/"`
	EntryID          string `json:"entry_id"          example:"tianfree01"`
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"tianfree-bridge"`
	Started string `json:"started" example:"2026-08-01T08:00:00Z"`
	Now     string `json:"now"     example:"2026-08-01T08:05:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// VersionResponse reports build info
// swagger:model
type VersionResponse struct {
	Build version.BuildInfo `json:"build"`
}

// swagger:route GET /meta Meta metaDevice
// @Summary Integration device metadata
// @Tags Meta
// @Produce json
// @Success 200 type DeviceResponse "ok"
// @Router /meta [get]
func (h *handlers) device(_ *http.Request) (any, error) {
	return DeviceResponse{
		Name:             IntegrationName,
		Manufacturer:     Manufacturer,
		Model:            Model,
		Version:          version.Info().Version,
		ConfigurationURL: ConfigurationURL,
		EntryID:          h.deps.EntryID,
	}, nil
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := time.Now()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     now.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt).Seconds()),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build version info
// @Tags Meta
// @Produce json
// @Success 200 type VersionResponse "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return VersionResponse{Build: version.Info()}, nil
}
