// Package logger wraps zerolog: one root logger for the process plus request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"bulkdate/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options configures the root logger. Format "json" writes raw JSON lines, anything else is console
type Options struct {
	Level     string
	Format    string
	Service   string
	Component string
	Caller    bool
	Writer    io.Writer
}

var root atomic.Pointer[Logger]

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// fromEnv reads the LOG_* variables without going through config (config logs)
func fromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:   rc.Get("LEVEL", "info"),
		Format:  strings.ToLower(rc.Get("FORMAT", "console")),
		Service: rc.Get("SERVICE", "bulkdate"),
		Caller:  rc.GetBool("CALLER", false),
	}
}

// New builds a logger from opt
func New(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	c := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Component != "" {
		c = c.Str("component", opt.Component)
	}
	if opt.Caller {
		c = c.Caller()
	}
	return c.Logger()
}

// Init replaces the root logger
func Init(opt Options) {
	l := New(opt)
	root.Store(&l)
}

// Get returns the root logger, built from LOG_* env on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	l := New(fromEnv())
	root.CompareAndSwap(nil, &l)
	return root.Load()
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		if strings.EqualFold(strings.TrimSpace(s), "warning") {
			return zerolog.WarnLevel
		}
		return zerolog.InfoLevel
	}
	return lvl
}

type ctxKey uint8

const (
	keyRequestID ctxKey = iota
	keyOperator
)

// WithRequest stores the request id and acting operator for C
func WithRequest(ctx context.Context, reqID, operator string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if operator != "" {
		ctx = context.WithValue(ctx, keyOperator, operator)
	}
	return ctx
}

// C returns a child of the root logger carrying request_id and operator from ctx
func C(ctx context.Context) *Logger {
	b := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		b = b.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyOperator).(string); s != "" {
		b = b.Str("operator", s)
	}
	l := b.Logger()
	return &l
}

// Named returns a child of the root logger tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}
