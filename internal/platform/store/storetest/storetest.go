// Package storetest opens throwaway stores for package tests
package storetest

import (
	"context"
	"testing"

	"bulkdate/internal/platform/store"

	"github.com/rs/zerolog"
)

// Open returns a store on a private in-memory sqlite database with ms applied
// the store is closed on test cleanup
func Open(t testing.TB, ms ...store.Migration) *store.Store {
	t.Helper()
	ctx := context.Background()

	s, err := store.Open(ctx, store.Config{Driver: store.SQLite}, store.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("storetest: open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if _, err := store.Migrate(ctx, s.DB, s.Dialect, ms...); err != nil {
		t.Fatalf("storetest: migrate: %v", err)
	}
	return s
}

// MustExec runs a seed statement and fails the test on error
func MustExec(t testing.TB, q store.RowQuerier, sql string, args ...any) {
	t.Helper()
	if _, err := q.Exec(context.Background(), sql, args...); err != nil {
		t.Fatalf("storetest: exec %q: %v", sql, err)
	}
}
