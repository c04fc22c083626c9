// Package wiring builds the module graph shared by the API server and the CLI
package wiring

import (
	"context"

	modkit "bulkdate/internal/modkit"
	"bulkdate/internal/modkit/module"
	"bulkdate/internal/platform/logger"
	"bulkdate/internal/platform/store"

	entmod "bulkdate/internal/services/entities/module"
	entrepo "bulkdate/internal/services/entities/repo"
	entsvc "bulkdate/internal/services/entities/service"
	histmod "bulkdate/internal/services/history/module"
	hrepo "bulkdate/internal/services/history/repo"
	hsvc "bulkdate/internal/services/history/service"
	rdmod "bulkdate/internal/services/redistribute/module"
	rsvc "bulkdate/internal/services/redistribute/service"
	setmod "bulkdate/internal/services/settings/module"
	setrepo "bulkdate/internal/services/settings/repo"
	setsvc "bulkdate/internal/services/settings/service"
)

// Set is the constructed module graph plus the services behind it
type Set struct {
	Settings     modkit.Module
	Entities     modkit.Module
	History      modkit.Module
	Redistribute modkit.Module

	SettingsSvc     setsvc.Service
	EntitiesSvc     entsvc.Service
	HistorySvc      hsvc.Service
	RedistributeSvc rsvc.Service
}

// Build constructs every module from deps in dependency order:
// settings and entities first, then history, then redistribute
func Build(deps modkit.Deps, opts ...modkit.Option) Set {
	var s Set

	s.Settings = setmod.New(deps, opts...)
	s.SettingsSvc = module.MustPortsOf[setsvc.Service](s.Settings)

	s.Entities = entmod.New(deps, opts...)
	s.EntitiesSvc = module.MustPortsOf[entsvc.Service](s.Entities)

	s.History = histmod.New(deps, with(opts, modkit.WithPorts(histmod.Requires{
		Settings: s.SettingsSvc,
	}))...)
	s.HistorySvc = module.MustPortsOf[hsvc.Service](s.History)

	s.Redistribute = rdmod.New(deps, with(opts, modkit.WithPorts(rdmod.Requires{
		Entities: s.EntitiesSvc,
		History:  s.HistorySvc,
		Settings: s.SettingsSvc,
	}))...)
	s.RedistributeSvc = module.MustPortsOf[rsvc.Service](s.Redistribute)

	return s
}

func with(opts []modkit.Option, extra ...modkit.Option) []modkit.Option {
	out := make([]modkit.Option, 0, len(opts)+len(extra))
	return append(append(out, opts...), extra...)
}

// Modules returns the modules in mount order
func (s Set) Modules() []modkit.Module {
	return []modkit.Module{s.Settings, s.Entities, s.History, s.Redistribute}
}

// Migrations returns every table migration in apply order
func Migrations() []store.Migration {
	var out []store.Migration
	out = append(out, entrepo.Migrations...)
	out = append(out, setrepo.Migrations...)
	out = append(out, hrepo.Migrations...)
	return out
}

// Migrate applies the schema, creates the clickhouse mirror table when one
// is configured and seeds missing plugin options
func Migrate(ctx context.Context, st *store.Store, settings setsvc.Service, log logger.Logger) error {
	applied, err := store.Migrate(ctx, st.DB, st.Dialect, Migrations()...)
	if err != nil {
		return err
	}
	for _, id := range applied {
		log.Info().Str("migration", id).Msg("migration applied")
	}

	if m, ok := hrepo.NewMirror(st.CH).(*hrepo.CHMirror); ok {
		if err := m.Ensure(ctx); err != nil {
			return err
		}
		log.Info().Str("table", hrepo.MirrorTable).Msg("history mirror ready")
	}

	added, err := settings.Activate(ctx)
	if err != nil {
		return err
	}
	if len(added) > 0 {
		log.Info().Strs("options", added).Msg("default options seeded")
	}
	return nil
}
