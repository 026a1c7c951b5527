// @title         Tianfree Bridge API
// @version       1.1.0
// @description   Cached Tian API content units with time-slot and rotation highlights

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/lambilly/hass-tian-free/internal/platform/clock"
	"github.com/lambilly/hass-tian-free/internal/platform/config"
	"github.com/lambilly/hass-tian-free/internal/platform/logger"
	phttp "github.com/lambilly/hass-tian-free/internal/platform/net/http"

	"github.com/lambilly/hass-tian-free/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// stable entry id unless one is pinned via env
	entry := root.Prefix("TIAN_").MayString("ENTRY_ID", uuid.NewString())

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	sys := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			Clock:          clock.System{},
			Entry:          entry,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// first refresh cycle plus daily, retry and rotation timers
	sys.Start(ctx)
	defer sys.Close()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
