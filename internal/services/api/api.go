// Package api provides the HTTP API for the application
package api

import (
	"net/http"
	"time"

	"bulkdate/internal/core/version"
	"bulkdate/internal/platform/cache"
	"bulkdate/internal/platform/config"
	"bulkdate/internal/platform/logger"
	"bulkdate/internal/platform/metrics"
	phttp "bulkdate/internal/platform/net/http"
	"bulkdate/internal/platform/net/middleware"
	"bulkdate/internal/platform/store"
	ptime "bulkdate/internal/platform/time"

	"bulkdate/internal/modkit"
	"bulkdate/internal/modkit/httpkit"
	"bulkdate/internal/modkit/swaggerkit"

	metamod "bulkdate/internal/services/api/meta/module"
	"bulkdate/internal/services/wiring"

	"github.com/go-chi/chi/v5"
)

// Options are the API options
type Options struct {
	Config  config.Conf
	Store   *store.Store
	Logger  logger.Logger
	Cache   cache.Cache
	Metrics metrics.Recorder
	Clock   ptime.Clock
	Loc     *time.Location

	// Auth maps bearer tokens to operators for every route except meta; nil runs them as operator 0
	Auth middleware.AuthPort

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router and returns the
// module set so callers can drive its services (scheduler, migrations)
func Mount(r phttp.Router, opt Options) wiring.Set {
	// shared deps for modules
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		DB:      opt.Store.DB,
		Dialect: opt.Store.Dialect,
		CH:      opt.Store.CH,
		Cache:   opt.Cache,
		Metrics: opt.Metrics,
		Clock:   opt.Clock,
		Loc:     opt.Loc,
	}.Defaulted()

	set := wiring.Build(deps)
	meta := metamod.New(deps)

	stack := append(httpkit.CommonStack(), metrics.Middleware(deps.Metrics))

	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	r.Handle("/metrics", deps.Metrics.Handler())

	var public, secured []string
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		public = httpkit.Record(api, meta.MountRoutes)

		secured = httpkit.Protected(api, opt.Auth, func(pr httpkit.Router) {
			for _, m := range set.Modules() {
				m.MountRoutes(pr)
			}
		})
	})
	deps.Log.Debug().Strs("public", public).Strs("secured", secured).Msg("api routes mounted")

	if opt.EnableSwagger {
		err := swaggerkit.Mount(r, swaggerkit.Document{
			Title:    "bulkdate API",
			Version:  version.Info("").Version,
			BasePath: "/api/v1",
			Public:   public,
			Secured:  secured,
		})
		if err != nil {
			deps.Log.Error().Err(err).Msg("swagger docs disabled")
		}
	}
	return set
}

// Handler returns a fresh chi mux with the API mounted
func Handler(opt Options) (http.Handler, wiring.Set) {
	r := phttp.AdaptChi(chi.NewMux())
	set := Mount(r, opt)
	return r.Mux(), set
}
