package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bulkdate/internal/platform/store/lite"
	"bulkdate/internal/platform/store/sqltrace"
)

// liteAdapter wraps lite.Lite and implements TxRunner
// callers write $N placeholders; they are rebound before reaching sqlite
type liteAdapter struct {
	l *lite.Lite
}

func newLiteAdapter(l *lite.Lite) *liteAdapter { return &liteAdapter{l: l} }

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

func (a *liteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, a.l.DB, a.l.Tracer, a.l.SlowMs, q, args)
}

func (a *liteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, a.l.DB, a.l.Tracer, a.l.SlowMs, q, args)
}

func (a *liteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, a.l.DB, a.l.Tracer, a.l.SlowMs, q, args)
}

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := liteTxQuerier{tx: tx, tracer: a.l.Tracer, slowMs: a.l.SlowMs}
	if err := fn(q); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqlConn is the surface shared by *sql.DB and *sql.Tx
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func liteExec(ctx context.Context, c sqlConn, tr sqltrace.QueryTracer, slowMs int, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, rebindQ(q), args...)
	liteEmit(ctx, tr, slowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	return resultTag{n: n}, nil
}

func liteQuery(ctx context.Context, c sqlConn, tr sqltrace.QueryTracer, slowMs int, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, rebindQ(q), args...)
	liteEmit(ctx, tr, slowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func liteQueryRow(ctx context.Context, c sqlConn, tr sqltrace.QueryTracer, slowMs int, q string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, rebindQ(q), args...)
	return row{
		r: r,
		after: func(scanErr error) {
			liteEmit(ctx, tr, slowMs, q, args, start, scanErr)
		},
	}
}

func liteEmit(ctx context.Context, tr sqltrace.QueryTracer, slowMs int, q string, args []any, start time.Time, err error) {
	if tr == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	tr.OnQuery(ctx, sqltrace.QueryEvent{
		SQL:       q,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      sqltrace.IsSlow(elapsedUS, slowMs),
	})
}

// liteTxQuerier is the RowQuerier handed to Tx callbacks
type liteTxQuerier struct {
	tx     *sql.Tx
	tracer sqltrace.QueryTracer
	slowMs int
}

func (t liteTxQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return liteExec(ctx, t.tx, t.tracer, t.slowMs, q, args)
}

func (t liteTxQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return liteQuery(ctx, t.tx, t.tracer, t.slowMs, q, args)
}

func (t liteTxQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	return liteQueryRow(ctx, t.tx, t.tracer, t.slowMs, q, args)
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

// resultTag reports rows affected for database/sql results
type resultTag struct{ n int64 }

func (t resultTag) String() string      { return fmt.Sprintf("ROWS %d", t.n) }
func (t resultTag) RowsAffected() int64 { return t.n }
