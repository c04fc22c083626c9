package wiring

import (
	"context"
	"time"

	"bulkdate/internal/platform/bus"
	"bulkdate/internal/platform/cache"
	"bulkdate/internal/platform/config"
	"bulkdate/internal/platform/logger"
	"bulkdate/internal/platform/metrics"
	"bulkdate/internal/platform/store"
	ptime "bulkdate/internal/platform/time"

	modkit "bulkdate/internal/modkit"
)

// DefaultCacheSubject is the NATS subject replicas share cache invalidations on
const DefaultCacheSubject = "bulkdate.cache"

// StoreConfig reads SERVICE_* keys; tag names the binary in clickhouse client info
func StoreConfig(root config.Conf, tag string) store.Config {
	svc := root.Prefix("SERVICE_")
	pgCfg := svc.Prefix("PGSQL_")
	liteCfg := svc.Prefix("SQLITE_")
	chCfg := svc.Prefix("CLICKHOUSE_")

	cfg := store.Config{
		AppName: "bulkdate-" + tag,
		Driver:  store.Dialect(svc.MayEnum("DB_DRIVER", string(store.Postgres), string(store.Postgres), string(store.SQLite))),
		Lite: store.LiteConfig{
			Path:        liteCfg.MayString("PATH", "bulkdate.db"),
			LogSQL:      liteCfg.MayBool("LOG_SQL", false),
			SlowQueryMs: liteCfg.MayInt("SLOW_MS", 200),
		},
		CH: store.CHConfig{
			Enabled:    chCfg.MayBool("ENABLED", false),
			ClientName: "bulkdate",
			ClientTag:  tag,
		},
	}
	if cfg.Driver == store.Postgres {
		cfg.PG = store.PGConfig{
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		}
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = chCfg.MustString("DBURL")
	}
	return cfg
}

// SiteLocation reads SITE_TIMEZONE, falling back to SITE_GMT_OFFSET hours
func SiteLocation(root config.Conf) (*time.Location, error) {
	site := root.Prefix("SITE_")
	return ptime.Site(site.MayString("TIMEZONE", ""), site.MayFloat64("GMT_OFFSET", 0))
}

// Runtime is everything a binary opens before building modules
type Runtime struct {
	Store   *store.Store
	Bus     bus.Bus
	Cache   cache.Cache
	Metrics metrics.Recorder
	Loc     *time.Location
	Log     logger.Logger

	stopListen func() error
}

// Open brings up the store, bus, cache and metrics described by root
func Open(ctx context.Context, root config.Conf, tag string, log logger.Logger) (*Runtime, error) {
	loc, err := SiteLocation(root)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, StoreConfig(root, tag), store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	rt := &Runtime{Store: st, Loc: loc, Log: log}

	natsCfg := root.Prefix("SERVICE_NATS_")
	rt.Bus, err = bus.Open(bus.Config{
		Enabled: natsCfg.MayBool("ENABLED", false),
		URL:     natsCfg.MayString("URL", ""),
		Name:    "bulkdate-" + tag,
	}, log)
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	core := root.Prefix("CORE_")
	local := cache.New(cache.Config{
		Enabled: core.MayBool("CACHE_ENABLED", true),
		SizeMB:  core.MayInt("CACHE_SIZE_MB", 16),
		TTL:     core.MayDuration("CACHE_TTL", 10*time.Minute),
	}, log)
	bc := cache.NewBroadcast(local, rt.Bus, natsCfg.MayString("SUBJECT", DefaultCacheSubject), log)
	if rt.stopListen, err = bc.Listen(); err != nil {
		_ = rt.Close(ctx)
		return nil, err
	}
	rt.Cache = bc

	rt.Metrics = metrics.New(metrics.Config{Enabled: core.MayBool("METRICS_ENABLED", true)})
	return rt, nil
}

// Deps returns module deps over the runtime
func (rt *Runtime) Deps(root config.Conf) modkit.Deps {
	return modkit.Deps{
		Log:     rt.Log,
		Cfg:     root,
		DB:      rt.Store.DB,
		Dialect: rt.Store.Dialect,
		CH:      rt.Store.CH,
		Cache:   rt.Cache,
		Metrics: rt.Metrics,
		Loc:     rt.Loc,
	}
}

// Close stops the cache listener, drains the bus and closes the store
func (rt *Runtime) Close(ctx context.Context) error {
	if rt.stopListen != nil {
		_ = rt.stopListen()
	}
	if rt.Bus != nil {
		if err := rt.Bus.Close(); err != nil {
			rt.Log.Warn().Err(err).Msg("bus close failed")
		}
	}
	return rt.Store.Close(ctx)
}
