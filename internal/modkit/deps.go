package modkit

import (
	"time"

	"bulkdate/internal/modkit/repokit"
	"bulkdate/internal/platform/cache"
	"bulkdate/internal/platform/config"
	"bulkdate/internal/platform/logger"
	"bulkdate/internal/platform/metrics"
	"bulkdate/internal/platform/store"
	ptime "bulkdate/internal/platform/time"
)

// Deps are the process wide dependencies every module is built from
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	DB      repokit.TxRunner
	Dialect store.Dialect
	CH      store.Clickhouse

	Cache   cache.Cache
	Metrics metrics.Recorder
	Clock   ptime.Clock

	// Loc is the site timezone every local date is rendered in
	Loc *time.Location
}

// Defaulted fills the optional seams with their no-op forms
func (d Deps) Defaulted() Deps {
	if d.Dialect == "" {
		d.Dialect = store.Postgres
	}
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Noop{}
	}
	if d.Clock == nil {
		d.Clock = ptime.System{}
	}
	if d.Loc == nil {
		d.Loc = time.UTC
	}
	return d
}
