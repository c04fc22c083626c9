package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	perr "bulkdate/internal/platform/errors"
)

var errExtraRows = errors.New("store: query returned more than one row")

// Exec runs a statement and hands back its tag
func Exec(ctx context.Context, q RowQuerier, sql string, args ...any) (CommandTag, error) {
	return q.Exec(ctx, sql, args...)
}

// ExecOne runs a statement that must touch exactly one row; none is ErrNotFound
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		if n == 0 {
			return perr.ErrNotFound
		}
		return fmt.Errorf("store: %d rows affected, want 1", n)
	}
	return nil
}

// Scalar reads a single value from the first row
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (v T, err error) {
	if err = q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// One maps exactly one row; an empty result is ErrNotFound
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	items, err := collect(ctx, q, scan, 1, sql, args)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, perr.ErrNotFound
	}
	return items[0], nil
}

// Many maps every row; an empty result is a nil slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, 0, sql, args)
}

// collect scans rows until exhausted; limit > 0 turns an extra row into errExtraRows
func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), limit int, sql string, args []any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		if limit > 0 && len(out) == limit {
			return nil, errExtraRows
		}
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Placeholders renders n markers numbered from start, e.g. Placeholders(3, 2) is "$3,$4"
func Placeholders(start, n int) string {
	marks := make([]string, max(n, 0))
	for i := range marks {
		marks[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(marks, ",")
}
