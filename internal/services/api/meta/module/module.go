// Package module mounts the public meta endpoints (health, readiness, version, site clock)
package module

import (
	"time"

	modkit "bulkdate/internal/modkit"
	"bulkdate/internal/modkit/httpkit"

	metahttp "bulkdate/internal/services/api/meta/http"
)

// Module implements modkit.Module; it exposes no ports
type Module struct {
	modkit.Base
}

// New constructs the meta module; uptime counts from this call
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	deps = deps.Defaulted()

	d := metahttp.Deps{
		ServiceName: "bulkdate-api",
		StartedAt:   time.Now(),
		DB:          deps.DB,
		DBName:      string(deps.Dialect),
		CH:          deps.CH,
		Clock:       deps.Clock,
		Loc:         deps.Loc,
	}
	return &Module{Base: b.Base(func(r httpkit.Router) { metahttp.Register(r, d) })}
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
