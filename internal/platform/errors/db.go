package errors

import (
	"database/sql"
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLSTATE classes the repos can hit
var pgCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,
	"23503": ErrorCodeInvalidArgument, // foreign key: the input named a missing row
	"23502": ErrorCodeValidation,
	"23514": ErrorCodeValidation,
	"22001": ErrorCodeInvalidArgument,
	"22P02": ErrorCodeInvalidArgument,
	"25006": ErrorCodeUnavailable,
	"57P03": ErrorCodeUnavailable,
}

// IsNoRows reports a missing row from either pgx or database/sql
func IsNoRows(err error) bool {
	return stderrs.Is(err, pgx.ErrNoRows) || stderrs.Is(err, sql.ErrNoRows)
}

// PostgresCode maps a pgx error to a code; ok is false for non postgres errors
func PostgresCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	if c, ok := pgCodes[pgErr.Code]; ok {
		return c, true
	}
	return ErrorCodeDB, true
}

// SQLiteCode maps a modernc sqlite error to a code; ok is false for non sqlite errors
func SQLiteCode(err error) (ErrorCode, bool) {
	var le *sqlite.Error
	if !stderrs.As(err, &le) {
		return ErrorCodeUnknown, false
	}
	switch le.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrorCodeDuplicateKey, true
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrorCodeInvalidArgument, true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return ErrorCodeValidation, true
	}
	switch le.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromDB maps a driver error (pgx or sqlite) onto a coded error.
// Missing rows become NotFound and already coded errors pass through
func FromDB(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	msg := fmt.Sprintf(format, a...)
	if IsNoRows(err) {
		return Wrap(err, ErrorCodeNotFound, msg)
	}
	if code, ok := SQLiteCode(err); ok {
		return Wrap(err, code, msg)
	}
	if code, ok := PostgresCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
