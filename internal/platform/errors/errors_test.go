package errors

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidArgf("tab is required"), http.StatusUnprocessableEntity},
		{JSONErrf("bad body"), http.StatusBadRequest},
		{New(ErrorCodeValidation, "retention must be one of 7 14 30 60"), http.StatusBadRequest},
		{Unauthorizedf("missing token"), http.StatusUnauthorized},
		{Forbiddenf("the Posts tab is disabled"), http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{New(ErrorCodeDB, "insert"), http.StatusInternalServerError},
		{stderrs.New("foreign"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWrapKeepsChain(t *testing.T) {
	cause := stderrs.New("disk full")
	err := fmt.Errorf("restore: %w", Wrapf(cause, ErrorCodeDB, "write post %d", 7))

	if !IsCode(err, ErrorCodeDB) {
		t.Fatalf("code lost through fmt wrap: %v", CodeOf(err))
	}
	if !stderrs.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if got := err.Error(); got != "restore: write post 7: disk full" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestWithFieldAndOpCopy(t *testing.T) {
	base := InvalidArgf("bad id")
	withField := WithField(base, "id")
	withOp := WithOp(withField, "history.restore")

	e, _ := As(withOp)
	if e.Field() != "id" || e.Op() != "history.restore" {
		t.Fatalf("field/op = %q/%q", e.Field(), e.Op())
	}
	if orig, _ := As(base); orig.Field() != "" {
		t.Fatalf("original mutated")
	}

	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign || WithOp(foreign, "o") != foreign {
		t.Fatalf("foreign errors should pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil should give zero wire, got %+v", w)
	}
	w := WireFrom(WithField(InvalidArgf("bad"), "tab"))
	if w.Code != ErrorCodeInvalidArgument || w.Message != "bad" || w.Field != "tab" {
		t.Fatalf("unexpected wire %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire %+v", w)
	}
}

func openMem(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteCode(t *testing.T) {
	db := openMem(t)
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `CREATE TABLE t (k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO t (k, v) VALUES ('a', 'x')`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, dup := db.ExecContext(ctx, `INSERT INTO t (k, v) VALUES ('a', 'y')`)
	if code, ok := SQLiteCode(dup); !ok || code != ErrorCodeDuplicateKey {
		t.Fatalf("SQLiteCode(dup) = %v %v", code, ok)
	}
	_, nn := db.ExecContext(ctx, `INSERT INTO t (k, v) VALUES ('b', NULL)`)
	if code, ok := SQLiteCode(nn); !ok || code != ErrorCodeValidation {
		t.Fatalf("SQLiteCode(notnull) = %v %v", code, ok)
	}
	if !IsCode(FromDB(dup, "insert %s", "t"), ErrorCodeDuplicateKey) {
		t.Fatalf("FromDB should map sqlite duplicate key")
	}
	if _, ok := SQLiteCode(stderrs.New("nope")); ok {
		t.Fatalf("non sqlite error should return ok=false")
	}
}

func TestPostgresCode(t *testing.T) {
	tests := map[string]ErrorCode{
		"23505": ErrorCodeDuplicateKey,
		"23503": ErrorCodeInvalidArgument,
		"23514": ErrorCodeValidation,
		"57P03": ErrorCodeUnavailable,
		"40001": ErrorCodeDB,
	}
	for state, want := range tests {
		err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: state})
		if got, ok := PostgresCode(err); !ok || got != want {
			t.Errorf("PostgresCode(%s) = %v %v, want %v", state, got, ok, want)
		}
	}
	if _, ok := PostgresCode(stderrs.New("plain")); ok {
		t.Fatalf("plain error is not a postgres error")
	}
}

func TestFromDB(t *testing.T) {
	if FromDB(nil, "x") != nil {
		t.Fatalf("FromDB(nil) should be nil")
	}
	if !IsCode(FromDB(sql.ErrNoRows, "get %d", 1), ErrorCodeNotFound) {
		t.Fatalf("sql.ErrNoRows should map to not found")
	}
	if !IsCode(FromDB(pgx.ErrNoRows, "get"), ErrorCodeNotFound) {
		t.Fatalf("pgx.ErrNoRows should map to not found")
	}
	if !IsCode(FromDB(&pgconn.PgError{Code: "23505"}, "insert"), ErrorCodeDuplicateKey) {
		t.Fatalf("pg duplicate should map to duplicate key")
	}
	coded := Forbiddenf("tab disabled")
	if got := FromDB(coded, "ignored"); got != coded {
		t.Fatalf("coded errors should pass through unchanged")
	}
	if !IsCode(FromDB(stderrs.New("boom"), "x"), ErrorCodeDB) {
		t.Fatalf("unknown driver errors should map to DB")
	}
}
