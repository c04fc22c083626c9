// Package repo provides key value access to bd_options
package repo

import (
	"context"

	"bulkdate/internal/modkit/repokit"
	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/store"
)

// Repo defines the options contract
type Repo interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, name, value string) error
	AddIfMissing(ctx context.Context, name, value string) (bool, error)
}

type (
	// SQL implements Repo for every supported dialect
	SQL struct{}

	queries struct{ q repokit.Queryer }
)

// NewSQL creates a new repository binder
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind binds a queryer to the Repo implementation
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

type option struct{ name, value string }

func (r *queries) All(ctx context.Context) (map[string]string, error) {
	rows, err := store.Many(ctx, r.q, func(row repokit.Row) (option, error) {
		var o option
		err := row.Scan(&o.name, &o.value)
		return o, err
	}, `SELECT option_name, option_value FROM bd_options ORDER BY option_name`)
	if err != nil {
		return nil, perr.FromDB(err, "load options")
	}
	out := make(map[string]string, len(rows))
	for _, o := range rows {
		out[o.name] = o.value
	}
	return out, nil
}

func (r *queries) Set(ctx context.Context, name, value string) error {
	_, err := store.Exec(ctx, r.q, `
		INSERT INTO bd_options (option_name, option_value) VALUES ($1, $2)
		ON CONFLICT (option_name) DO UPDATE SET option_value = excluded.option_value`, name, value)
	if err != nil {
		return perr.FromDB(err, "set option %s", name)
	}
	return nil
}

// AddIfMissing inserts name only when absent and reports whether it did
func (r *queries) AddIfMissing(ctx context.Context, name, value string) (bool, error) {
	tag, err := store.Exec(ctx, r.q, `
		INSERT INTO bd_options (option_name, option_value) VALUES ($1, $2)
		ON CONFLICT (option_name) DO NOTHING`, name, value)
	if err != nil {
		return false, perr.FromDB(err, "add option %s", name)
	}
	return tag.RowsAffected() > 0, nil
}
