// Package bus is a thin publish/subscribe seam over NATS core subjects
package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bulkdate/internal/platform/logger"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
)

// Bus publishes JSON payloads and delivers raw messages to handlers
type Bus interface {
	Publish(ctx context.Context, subject string, v any) error
	Subscribe(subject string, fn func(data []byte)) (unsubscribe func() error, err error)
	Close() error
}

// Config configures the NATS connection
type Config struct {
	Enabled bool
	URL     string
	Name    string
}

// Open connects to NATS when enabled and returns a Noop bus otherwise
func Open(cfg Config, log logger.Logger) (Bus, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	if cfg.URL == "" {
		cfg.URL = nats.DefaultURL
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", cfg.URL, err)
	}
	return &NATS{nc: nc, log: log}, nil
}

// NATS is the live bus
type NATS struct {
	nc  *nats.Conn
	log logger.Logger
}

// Publish encodes v as JSON and publishes it; ctx bounds nothing on core NATS
// but a cancelled ctx skips the publish
func (b *NATS) Publish(ctx context.Context, subject string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.nc.Publish(subject, data)
}

// Subscribe registers fn for subject; handler panics are recovered and logged
func (b *NATS) Subscribe(subject string, fn func(data []byte)) (func() error, error) {
	sub, err := b.nc.Subscribe(subject, func(m *nats.Msg) {
		defer func() {
			if r := recover(); r != nil {
				b.log.Error().Interface("panic", r).Str("subject", subject).Msg("bus handler panic")
			}
		}()
		fn(m.Data)
	})
	if err != nil {
		return nil, err
	}
	return sub.Unsubscribe, nil
}

// Close drains pending messages and closes the connection
func (b *NATS) Close() error {
	if b == nil || b.nc == nil {
		return nil
	}
	if err := b.nc.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return err
	}
	return nil
}

// Noop drops every publish and never delivers
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
func (Noop) Subscribe(string, func([]byte)) (func() error, error) {
	return func() error { return nil }, nil
}
func (Noop) Close() error { return nil }

// Local is an in-process bus; replicas sharing one Local see each other's messages
type Local struct {
	mu   sync.RWMutex
	subs map[string][]func([]byte)
}

// NewLocal returns an empty in-process bus
func NewLocal() *Local { return &Local{subs: map[string][]func([]byte){}} }

// Publish delivers synchronously to every handler of subject
func (l *Local) Publish(_ context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	l.mu.RLock()
	fns := append([]func([]byte){}, l.subs[subject]...)
	l.mu.RUnlock()
	for _, fn := range fns {
		fn(data)
	}
	return nil
}

// Subscribe adds fn; unsubscribe removes every handler of subject
func (l *Local) Subscribe(subject string, fn func([]byte)) (func() error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs[subject] = append(l.subs[subject], fn)
	return func() error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, subject)
		return nil
	}, nil
}

// Close is a no-op
func (l *Local) Close() error { return nil }
