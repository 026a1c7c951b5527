// Package api provides the HTTP API for the bridge
package api

import (
	"context"

	"github.com/lambilly/hass-tian-free/internal/platform/clock"
	"github.com/lambilly/hass-tian-free/internal/platform/config"
	"github.com/lambilly/hass-tian-free/internal/platform/logger"
	phttp "github.com/lambilly/hass-tian-free/internal/platform/net/http"

	"github.com/lambilly/hass-tian-free/internal/modkit"
	"github.com/lambilly/hass-tian-free/internal/modkit/httpkit"
	"github.com/lambilly/hass-tian-free/internal/modkit/module"
	"github.com/lambilly/hass-tian-free/internal/modkit/swaggerkit"

	contentmod "github.com/lambilly/hass-tian-free/internal/services/content/module"
	highlightmod "github.com/lambilly/hass-tian-free/internal/services/highlight/module"
	metamod "github.com/lambilly/hass-tian-free/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Clock          clock.Clock
	Entry          string
	EnableSwagger  bool
	EnableProfiler bool
}

// System owns the scheduler lifecycles behind the mounted API
type System struct {
	content   *contentmod.Module
	highlight *highlightmod.Module
}

// Start runs the first refresh and arms every scheduler
func (s *System) Start(ctx context.Context) {
	s.content.Start(ctx)
	s.highlight.Start()
}

// Close cancels every pending timer
func (s *System) Close() {
	s.highlight.Close()
	s.content.Close()
}

// Mount mounts the API service onto the given router and returns the
// scheduler system; callers Start it after the server is up and Close it
// on shutdown
func Mount(r phttp.Router, opt Options) *System {
	deps := modkit.Deps{
		Log:   *opt.Logger,
		Cfg:   opt.Config,
		Clock: opt.Clock,
		Entry: opt.Entry,
	}

	// Content owns the cache; highlight consumes it through its ports
	content := contentmod.New(deps)
	cports := content.Ports().(contentmod.Ports)

	highlight := highlightmod.New(deps, modkit.WithPorts(highlightmod.Uses{
		Cache:   cports.Cache,
		Enabled: cports.Reader.Enabled(),
	}))

	mods := []module.Module{
		metamod.New(deps),
		content,
		highlight,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	return &System{content: content, highlight: highlight}
}
