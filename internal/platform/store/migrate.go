package store

import (
	"context"
	"fmt"
	"time"
)

// Migration is one schema step expressed for every dialect
// ID must be unique and stable; applied ids are recorded in bd_schema_migrations
type Migration struct {
	ID       string
	Postgres []string
	SQLite   []string
}

const migrationsDDL = `CREATE TABLE IF NOT EXISTS bd_schema_migrations (
	id         TEXT PRIMARY KEY,
	applied_at TEXT NOT NULL
)`

// Migrate applies the migrations not yet recorded, in order, one transaction each
func Migrate(ctx context.Context, db TxRunner, d Dialect, ms ...Migration) (applied []string, err error) {
	if db == nil {
		return nil, fmt.Errorf("migrate: no database configured")
	}
	if _, err := db.Exec(ctx, migrationsDDL); err != nil {
		return nil, fmt.Errorf("migrate: bootstrap: %w", err)
	}

	for _, m := range ms {
		n, err := Scalar[int64](ctx, db, `SELECT COUNT(*) FROM bd_schema_migrations WHERE id = $1`, m.ID)
		if err != nil {
			return applied, fmt.Errorf("migrate %s: %w", m.ID, err)
		}
		if n > 0 {
			continue
		}

		stmts, err := m.statements(d)
		if err != nil {
			return applied, err
		}
		err = db.Tx(ctx, func(q RowQuerier) error {
			for _, s := range stmts {
				if _, err := q.Exec(ctx, s); err != nil {
					return err
				}
			}
			_, err := q.Exec(ctx, `INSERT INTO bd_schema_migrations (id, applied_at) VALUES ($1, $2)`,
				m.ID, time.Now().UTC().Format(time.DateTime))
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("migrate %s: %w", m.ID, err)
		}
		applied = append(applied, m.ID)
	}
	return applied, nil
}

func (m Migration) statements(d Dialect) ([]string, error) {
	switch d {
	case Postgres:
		return m.Postgres, nil
	case SQLite:
		return m.SQLite, nil
	default:
		return nil, fmt.Errorf("migrate %s: unknown dialect %q", m.ID, d)
	}
}
