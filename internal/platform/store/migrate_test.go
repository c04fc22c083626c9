package store

import (
	"context"
	"reflect"
	"testing"
)

var probeMigrations = []Migration{
	{
		ID:       "0001_widgets",
		Postgres: []string{`CREATE TABLE widgets (id BIGSERIAL PRIMARY KEY, name TEXT NOT NULL)`},
		SQLite:   []string{`CREATE TABLE widgets (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL)`},
	},
	{
		ID:       "0002_widgets_name_idx",
		Postgres: []string{`CREATE INDEX widgets_name_idx ON widgets (name)`},
		SQLite:   []string{`CREATE INDEX widgets_name_idx ON widgets (name)`},
	},
}

func TestMigrate_AppliesOnceInOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := memDB(t)

	got, err := Migrate(ctx, db, SQLite, probeMigrations...)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if want := []string{"0001_widgets", "0002_widgets_name_idx"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("applied = %v, want %v", got, want)
	}

	again, err := Migrate(ctx, db, SQLite, probeMigrations...)
	if err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second run applied %v", again)
	}

	if _, err := db.Exec(ctx, `INSERT INTO widgets (name) VALUES ($1)`, "w"); err != nil {
		t.Fatalf("table not usable: %v", err)
	}
}

func TestMigrate_FailedStepRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := memDB(t)

	bad := Migration{
		ID:     "0001_bad",
		SQLite: []string{`CREATE TABLE half (id INTEGER)`, `NOT SQL AT ALL`},
	}
	if _, err := Migrate(ctx, db, SQLite, bad); err == nil {
		t.Fatalf("expected failure")
	}
	n, err := Scalar[int64](ctx, db, `SELECT COUNT(*) FROM sqlite_master WHERE name = 'half'`)
	if err != nil || n != 0 {
		t.Fatalf("half table should be rolled back, n=%d err=%v", n, err)
	}
	n, _ = Scalar[int64](ctx, db, `SELECT COUNT(*) FROM bd_schema_migrations`)
	if n != 0 {
		t.Fatalf("failed migration recorded")
	}
}

func TestMigrate_Guards(t *testing.T) {
	t.Parallel()

	if _, err := Migrate(context.Background(), nil, SQLite); err == nil {
		t.Fatalf("nil db should fail")
	}
	db := memDB(t)
	if _, err := Migrate(context.Background(), db, Dialect("oracle"), probeMigrations[0]); err == nil {
		t.Fatalf("unknown dialect should fail")
	}
}
