// Command bulkdate-api serves the bulk date redistribution API
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bulkdate/internal/modkit/repokit"
	"bulkdate/internal/platform/config"
	"bulkdate/internal/platform/logger"
	phttp "bulkdate/internal/platform/net/http"
	"bulkdate/internal/platform/net/middleware"

	"bulkdate/internal/services/api"
	"bulkdate/internal/services/wiring"

	"github.com/robfig/cron/v3"
)

func main() {
	// optional YAML layer (CONFIG_FILE); env still wins
	if err := config.LoadFromEnv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("config load failed")
	}

	root := config.New()
	core := root.Prefix("CORE_")
	apiCfg := core.Prefix("API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := wiring.Open(ctx, root, "api", *l)
	if err != nil {
		l.Panic().Err(err).Msg("runtime open failed")
	}
	defer func() {
		if err := rt.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, rt.Store)

	tokens, err := middleware.ParseTokens(core.MayCSV("AUTH_TOKENS", nil))
	if err != nil {
		l.Panic().Err(err).Msg("bad CORE_AUTH_TOKENS")
	}
	if len(tokens) == 0 {
		l.Warn().Msg("no auth tokens configured, every request runs as operator 0")
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(core)

	// mount our API
	set := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          rt.Store,
		Logger:         *l,
		Cache:          rt.Cache,
		Metrics:        rt.Metrics,
		Loc:            rt.Loc,
		Auth:           tokens,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	if core.MayBool("AUTO_MIGRATE", true) {
		if err := wiring.Migrate(ctx, rt.Store, set.SettingsSvc, *l); err != nil {
			l.Panic().Err(err).Msg("migrate failed")
		}
	}

	// scheduled retention sweep
	sched := cron.New(cron.WithLocation(rt.Loc))
	if spec := core.MayString("HISTORY_SWEEP_CRON", "@daily"); spec != "" {
		if _, err := sched.AddFunc(spec, func() {
			res, err := set.HistorySvc.Sweep(ctx)
			if err != nil {
				l.Error().Err(err).Msg("scheduled sweep failed")
				return
			}
			l.Info().Int64("deleted", res.Deleted).Int("retention_days", res.RetentionDays).Msg("scheduled sweep")
		}); err != nil {
			l.Panic().Err(err).Str("spec", spec).Msg("bad CORE_HISTORY_SWEEP_CRON")
		}
		sched.Start()
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Error().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
	}

	<-sched.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		l.Error().Err(err).Msg("http shutdown failed")
	}
}
