// Package pg opens a pgx connection pool and waits for the server to accept queries
package pg

import (
	"context"
	"fmt"
	"time"

	"bulkdate/internal/platform/logger"
	"bulkdate/internal/platform/store/sqltrace"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config selects the server and pool size
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// PG owns the pool; Tracer may be nil
type PG struct {
	Pool   *pgxpool.Pool
	Tracer sqltrace.QueryTracer
	SlowMs int
}

// Retry shapes WaitReady; attempts double the delay up to MaxDelay
type Retry struct {
	Attempts    int
	PingTimeout time.Duration
	Delay       time.Duration
	MaxDelay    time.Duration
}

// DefaultRetry rides out a database container that is still booting
var DefaultRetry = Retry{Attempts: 20, PingTimeout: 3 * time.Second, Delay: 150 * time.Millisecond, MaxDelay: 2 * time.Second}

var newPool = pgxpool.NewWithConfig

// Open builds the pool; tune runs on the parsed config before dialing
func Open(ctx context.Context, cfg Config, tracer sqltrace.QueryTracer, tune ...func(*pgxpool.Config)) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	for _, fn := range tune {
		fn(pcfg)
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// WaitReady pings until the server answers, ctx ends, or r.Attempts run out
func (p *PG) WaitReady(ctx context.Context, r Retry, log logger.Logger) error {
	var err error
	delay := r.Delay
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, r.PingTimeout)
		err = p.Pool.Ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = min(delay*2, r.MaxDelay)
	}
	return fmt.Errorf("pg: not ready after %d attempts: %w", r.Attempts, err)
}

// Close is safe on a nil PG or pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
