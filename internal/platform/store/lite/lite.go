// Package lite provides an embedded SQLite client on modernc.org/sqlite
package lite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bulkdate/internal/platform/store/sqltrace"

	_ "modernc.org/sqlite"
)

// Memory is the path that opens a private in-memory database
const Memory = ":memory:"

// Config configures the sqlite file
type Config struct {
	Path          string
	BusyTimeoutMs int
	SlowMs        int
}

// Lite is a sqlite handle with optional tracer
type Lite struct {
	DB     *sql.DB
	Tracer sqltrace.QueryTracer
	SlowMs int
}

// Open opens (and creates when missing) the database at cfg.Path
// a single connection is kept since sqlite allows one writer at a time
func Open(ctx context.Context, cfg Config, tracer sqltrace.QueryTracer) (*Lite, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = Memory
	}
	if path != Memory && !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: create data dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	busy := cfg.BusyTimeoutMs
	if busy <= 0 {
		busy = 5000
	}
	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busy),
	}
	if path != Memory {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}

	return &Lite{DB: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the handle
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}
