// Package module wires the content units into the API using modkit
package module

import (
	"context"
	"net/http"

	"github.com/lambilly/hass-tian-free/internal/adapters/tianapi"
	modkit "github.com/lambilly/hass-tian-free/internal/modkit"
	"github.com/lambilly/hass-tian-free/internal/modkit/httpkit"
	"github.com/lambilly/hass-tian-free/internal/platform/clock"
	str "github.com/lambilly/hass-tian-free/internal/platform/strings"
	"github.com/lambilly/hass-tian-free/internal/services/content/domain"
	contenthttp "github.com/lambilly/hass-tian-free/internal/services/content/http"
	"github.com/lambilly/hass-tian-free/internal/services/content/service"
)

// Ports exposed by the content module
type Ports struct {
	Reader  domain.ReaderPort
	Refresh domain.RefreshPort
	Cache   domain.CachePort
}

// Module implements the content module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Service
}

// New constructs the content module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("content"),
		modkit.WithPrefix("/sensors"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)

	clk := deps.Clock
	if clk == nil {
		clk = clock.System{}
	}

	fetcher := tianapi.New(tianapi.Options{Key: o.APIKey, Timeout: o.HTTPTimeout})
	cache := service.NewCache(o.CacheTTL, clk.Now)
	svc := service.New(cache, fetcher, clk, service.Config{
		Entry:      deps.Entry,
		Enabled:    o.EnabledTypes,
		RetryDelay: o.RetryDelay,
		PollEvery:  o.PollEvery,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{
		Reader:  svc,
		Refresh: svc,
		Cache:   svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		contenthttp.Register(r, contenthttp.Ports{
			Reader:  m.ports.Reader,
			Refresh: m.ports.Refresh,
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// Start runs the first refresh and arms the schedulers
func (m *Module) Start(ctx context.Context) { m.svc.Start(ctx) }

// Close stops the schedulers
func (m *Module) Close() { m.svc.Close() }

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
