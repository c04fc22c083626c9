// Package module wires date redistribution into the API using modkit
package module

import (
	"bulkdate/internal/core/sampler"
	modkit "bulkdate/internal/modkit"
	"bulkdate/internal/modkit/httpkit"
	"bulkdate/internal/platform/config"
	hdomain "bulkdate/internal/services/history/domain"
	"bulkdate/internal/services/redistribute/domain"
	rhttp "bulkdate/internal/services/redistribute/http"
	rsvc "bulkdate/internal/services/redistribute/service"
)

// Module implements the redistribute module
type Module struct {
	modkit.Base
	ports any
}

// Requires declares the ports a run needs from other modules
type Requires struct {
	Entities domain.Entities
	History  hdomain.Recorder
	Settings hdomain.SettingsLoader
}

// Options tunes batch pacing
type Options struct {
	ChunkSize       int
	InvalidateEvery int
}

// FromConfig reads CORE_REDISTRIBUTE_* values
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("CORE_REDISTRIBUTE_")
	return Options{
		ChunkSize:       rc.MayInt("CHUNK_SIZE", rsvc.DefaultChunkSize),
		InvalidateEvery: rc.MayInt("INVALIDATE_EVERY", rsvc.DefaultInvalidateEvery),
	}
}

// New constructs the redistribute module; Requires must be injected via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("redistribute"), modkit.WithPrefix("/redistribute")}, opts...)...)
	deps = deps.Defaulted()
	cfg := FromConfig(deps.Cfg)

	var injected Requires
	if p, ok := b.Ports.(Requires); ok {
		injected = p
	}
	switch {
	case injected.Entities == nil:
		panic("redistribute module requires an Entities port (from entities)")
	case injected.History == nil:
		panic("redistribute module requires a History port (from history)")
	case injected.Settings == nil:
		panic("redistribute module requires a Settings port (from settings)")
	}

	svc := rsvc.New(rsvc.Options{
		Entities:        injected.Entities,
		History:         injected.History,
		Settings:        injected.Settings,
		Cache:           deps.Cache,
		Metrics:         deps.Metrics,
		Sampler:         sampler.New(nil, deps.Loc),
		Clock:           deps.Clock,
		Loc:             deps.Loc,
		ChunkSize:       cfg.ChunkSize,
		InvalidateEvery: cfg.InvalidateEvery,
		Log:             deps.Log,
	})

	return &Module{
		Base:  b.Base(func(r httpkit.Router) { rhttp.Register(r, svc, deps.Clock) }),
		ports: Ports{Redistribute: svc},
	}
}
