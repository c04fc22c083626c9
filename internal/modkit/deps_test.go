package modkit

import (
	"testing"
	"time"

	"bulkdate/internal/platform/cache"
	"bulkdate/internal/platform/config"
	"bulkdate/internal/platform/metrics"
	"bulkdate/internal/platform/store"
	ptime "bulkdate/internal/platform/time"
)

func TestDeps_Defaulted(t *testing.T) {
	t.Parallel()

	d := Deps{Cfg: config.New()}.Defaulted()
	if d.Dialect != store.Postgres {
		t.Fatalf("Dialect = %q", d.Dialect)
	}
	if _, ok := d.Cache.(cache.Noop); !ok {
		t.Fatalf("Cache = %T", d.Cache)
	}
	if _, ok := d.Metrics.(metrics.Noop); !ok {
		t.Fatalf("Metrics = %T", d.Metrics)
	}
	if _, ok := d.Clock.(ptime.System); !ok {
		t.Fatalf("Clock = %T", d.Clock)
	}
	if d.Loc != time.UTC {
		t.Fatalf("Loc = %v", d.Loc)
	}
}

func TestDeps_DefaultedKeepsSetValues(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+02:00", 2*3600)
	fixed := ptime.Fixed(time.Date(2024, 1, 1, 0, 0, 0, 0, loc))
	d := Deps{Dialect: store.SQLite, Clock: fixed, Loc: loc}.Defaulted()
	if d.Dialect != store.SQLite || d.Loc != loc {
		t.Fatalf("Defaulted overwrote values: %+v", d)
	}
	if d.Clock.Now() != time.Time(fixed) {
		t.Fatalf("Clock overwritten")
	}
}
