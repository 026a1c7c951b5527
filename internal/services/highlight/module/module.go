// Package module wires the highlight units into the API using modkit
package module

import (
	"net/http"

	"github.com/lambilly/hass-tian-free/internal/core/catalog"
	"github.com/lambilly/hass-tian-free/internal/core/slots"
	modkit "github.com/lambilly/hass-tian-free/internal/modkit"
	"github.com/lambilly/hass-tian-free/internal/modkit/httpkit"
	str "github.com/lambilly/hass-tian-free/internal/platform/strings"
	cdomain "github.com/lambilly/hass-tian-free/internal/services/content/domain"
	"github.com/lambilly/hass-tian-free/internal/services/highlight/domain"
	hlhttp "github.com/lambilly/hass-tian-free/internal/services/highlight/http"
	"github.com/lambilly/hass-tian-free/internal/services/highlight/service"
)

// Uses are the cross-module ports the highlight units consume; inject with
// modkit.WithPorts
type Uses struct {
	Cache   cdomain.CachePort
	Enabled []catalog.Type
}

// Ports exposed by the highlight module
type Ports struct {
	Slot     domain.SlotPort
	Rotation domain.RotationPort
}

// Module implements the highlight module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	slot     *service.SlotUnit
	rotation *service.RotationUnit
}

// New constructs the highlight module. Requires a Uses port set injected
// via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("highlight"),
		modkit.WithPrefix("/highlight"),
	}, opts...)...)

	uses, ok := b.Ports.(Uses)
	if !ok {
		deps.Log.Panic().Msg("highlight module requires a Uses port set")
	}

	o := FromConfig(deps.Cfg)

	resolver := buildResolver(uses.Enabled)
	order := rotationOrder(uses.Enabled)

	slot := service.NewSlotUnit(deps.Entry, uses.Cache, resolver, deps.Clock, uses.Enabled)
	rotation := service.NewRotationUnit(deps.Entry, uses.Cache, deps.Clock, order, o.ScrollIntervalMinutes)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		slot:      slot,
		rotation:  rotation,
	}
	m.ports = Ports{Slot: slot, Rotation: rotation}

	external := b.Register
	m.register = func(r httpkit.Router) {
		hlhttp.Register(r, hlhttp.Ports{
			Slot:     m.ports.Slot,
			Rotation: m.ports.Rotation,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// buildResolver picks the fixed partition for the full catalog and the
// dynamic one for a subset
func buildResolver(enabled []catalog.Type) *slots.Resolver {
	if len(enabled) == len(catalog.All()) {
		return slots.NewFixed()
	}
	return slots.NewDynamic(enabled)
}

// rotationOrder filters the canonical rotation sequence down to the
// enabled set
func rotationOrder(enabled []catalog.Type) []catalog.Type {
	on := make(map[catalog.Type]bool, len(enabled))
	for _, t := range enabled {
		on[t] = true
	}
	var order []catalog.Type
	for _, t := range catalog.RotationOrder() {
		if on[t] {
			order = append(order, t)
		}
	}
	return order
}

// Start arms both units
func (m *Module) Start() {
	m.slot.Start()
	m.rotation.Start()
}

// Close stops both units
func (m *Module) Close() {
	m.slot.Close()
	m.rotation.Close()
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
