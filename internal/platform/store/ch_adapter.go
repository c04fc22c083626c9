package store

import (
	"context"
	"fmt"
	"time"

	"bulkdate/internal/platform/store/ch"
	"bulkdate/internal/platform/store/sqltrace"
)

// chSeam exposes *ch.CH as Clickhouse and traces every call
type chSeam struct {
	c      *ch.CH
	tracer sqltrace.QueryTracer
}

var (
	_ Clickhouse = (*chSeam)(nil)
	_ Pinger     = (*chSeam)(nil)
)

func newCHAdapter(c *ch.CH, tracer sqltrace.QueryTracer) *chSeam {
	return &chSeam{c: c, tracer: tracer}
}

// Insert takes rows as [][]any in table column order
func (a *chSeam) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return fmt.Errorf("store: clickhouse insert wants [][]any, got %T", data)
	}
	return a.traced(ctx, "INSERT INTO "+table, len(rows), func() error {
		return a.c.Insert(ctx, table, rows)
	})
}

func (a *chSeam) Exec(ctx context.Context, sql string, args ...any) error {
	return a.traced(ctx, sql, args, func() error { return a.c.Exec(ctx, sql, args...) })
}

func (a *chSeam) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	var rs ch.Rows
	err := a.traced(ctx, sql, args, func() (err error) {
		rs, err = a.c.Query(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (a *chSeam) Ping(ctx context.Context) error { return a.c.Ping(ctx) }
func (a *chSeam) Close() error                   { return a.c.Close() }

func (a *chSeam) traced(ctx context.Context, sql string, args any, fn func() error) error {
	start := time.Now()
	err := fn()
	if a.tracer != nil {
		a.tracer.OnQuery(ctx, sqltrace.QueryEvent{SQL: sql, Args: args, ElapsedUS: time.Since(start).Microseconds(), Err: err})
	}
	return err
}

// chRows drops the Close error so ch.Rows fits Rows
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
