package store

import (
	"cmp"
	"context"

	chx "bulkdate/internal/platform/store/ch"
	"bulkdate/internal/platform/store/lite"
	"bulkdate/internal/platform/store/pg"
	"bulkdate/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5/pgxpool"
)

// tracerFor returns a logging tracer labelled backend, or nil when on is false
func tracerFor(s *Store, backend string, on bool) sqltrace.QueryTracer {
	if !on {
		return nil
	}
	return sqltrace.Tracer(s.Log, backend)
}

// openPG dials the pool and blocks until postgres answers; boot pings bypass the tracer
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracerFor(s, "pg", cfg.PG.LogSQL), func(c *pgxpool.Config) {
		if cfg.AppName != "" {
			c.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
		}
	})
	if err != nil {
		return nil, err
	}
	if err := p.WaitReady(ctx, pg.DefaultRetry, s.Log); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

func openLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	l, err := lite.Open(ctx, lite.Config{
		Path:          cfg.Lite.Path,
		BusyTimeoutMs: cfg.Lite.BusyTimeoutMs,
		SlowMs:        cfg.Lite.SlowQueryMs,
	}, tracerFor(s, "sqlite", cfg.Lite.LogSQL))
	if err != nil {
		return nil, err
	}
	return newLiteAdapter(l), nil
}

func openCH(ctx context.Context, cfg Config, s *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cmp.Or(cfg.CH.ClientName, cfg.AppName),
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c, tracerFor(s, "ch", cfg.CH.LogSQL)), nil
}
