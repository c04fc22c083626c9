// Package module wires the date history ledger into the API using modkit
package module

import (
	modkit "bulkdate/internal/modkit"
	"bulkdate/internal/modkit/httpkit"
	"bulkdate/internal/modkit/repokit"
	"bulkdate/internal/platform/config"
	entrepo "bulkdate/internal/services/entities/repo"
	"bulkdate/internal/services/history/domain"
	hhttp "bulkdate/internal/services/history/http"
	hrepo "bulkdate/internal/services/history/repo"
	hsvc "bulkdate/internal/services/history/service"
)

// Module implements the history module
type Module struct {
	modkit.Base
	ports any
}

// Requires declares the ports history takes from other modules
type Requires struct {
	Settings domain.SettingsLoader
}

// Options tunes the ledger
type Options struct {
	PageSize int
}

// FromConfig reads CORE_HISTORY_* values
func FromConfig(cfg config.Conf) Options {
	hc := cfg.Prefix("CORE_HISTORY_")
	return Options{PageSize: hc.MayInt("PAGE_SIZE", domain.DefaultPageSize)}
}

// PostWriters binds the entity date writer to a queryer
func PostWriters() repokit.Binder[domain.PostWriter] {
	return repokit.BindFunc[domain.PostWriter](func(q repokit.Queryer) domain.PostWriter {
		return entrepo.NewSQL().Bind(q)
	})
}

// New constructs the history module; Requires must be injected via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("history"), modkit.WithPrefix("/history")}, opts...)...)
	deps = deps.Defaulted()
	cfg := FromConfig(deps.Cfg)

	var injected Requires
	if p, ok := b.Ports.(Requires); ok {
		injected = p
	}
	if injected.Settings == nil {
		panic("history module requires a Settings port (from settings)")
	}

	svc := hsvc.New(deps.DB, hrepo.NewSQL(), hsvc.Options{
		Posts:    PostWriters(),
		Settings: injected.Settings,
		Mirror:   hrepo.NewMirror(deps.CH),
		Cache:    deps.Cache,
		Metrics:  deps.Metrics,
		Clock:    deps.Clock,
		Loc:      deps.Loc,
		PageSize: cfg.PageSize,
		Log:      deps.Log,
	})

	return &Module{
		Base:  b.Base(func(r httpkit.Router) { hhttp.Register(r, svc) }),
		ports: Ports{History: svc},
	}
}
