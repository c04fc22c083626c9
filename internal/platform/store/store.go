// Package store opens the sql and columnar backends and exposes them behind small seams
package store

import (
	"context"
	"errors"
	"fmt"

	"bulkdate/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Dialect names the sql engine behind Store.DB
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Store holds whichever backends Config enabled; the rest stay nil
type Store struct {
	Log     logger.Logger
	DB      TxRunner
	Dialect Dialect
	CH      Clickhouse
}

type (
	// Row is a single scanned row
	Row interface {
		Scan(dest ...any) error
	}

	// Rows is a forward-only result set; it also satisfies Row for the current position
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close()
		Columns() []string
	}

	// CommandTag reports what a write did
	CommandTag interface {
		String() string
		RowsAffected() int64
	}
)

// RowQuerier is what repos run sql against; $N placeholders work on every dialect
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also scope fn to one transaction
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar seam used by the history mirror
type Clickhouse interface {
	Insert(ctx context.Context, table string, data any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

// Pinger reports backend readiness
type Pinger interface{ Ping(context.Context) error }

// Open connects the backends cfg asks for; on failure nothing is left open
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	var err error
	switch cfg.Driver {
	case "":
	case Postgres:
		s.DB, err = openPG(ctx, cfg, s)
	case SQLite:
		s.DB, err = openLite(ctx, cfg, s)
	default:
		err = fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	s.Dialect = cfg.Driver

	if cfg.CH.Enabled {
		if s.CH, err = openCH(ctx, cfg, s); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// backends lists the open seams by label
func (s *Store) backends() map[string]any {
	out := map[string]any{}
	if s.DB != nil {
		out[string(s.Dialect)] = s.DB
	}
	if s.CH != nil {
		out["ch"] = s.CH
	}
	return out
}

// Guard pings every open backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for name, b := range s.backends() {
		if p, ok := b.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend; a nil Store is a no-op
func (s *Store) Close(context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	for name, b := range s.backends() {
		if c, ok := b.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
