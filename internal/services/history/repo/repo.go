// Package repo provides sql access to the date history ledger
package repo

import (
	"context"
	"strconv"
	"strings"

	"bulkdate/internal/modkit/repokit"
	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/store"
	"bulkdate/internal/services/history/domain"
)

// Repo defines the ledger storage contract
type Repo interface {
	Insert(ctx context.Context, rec domain.NewRecord, modifiedAt string) (int64, error)
	Get(ctx context.Context, id int64) (domain.Record, error)
	Delete(ctx context.Context, id int64) error
	DeleteBefore(ctx context.Context, cutoff string) (int64, error)
	Clear(ctx context.Context) (int64, error)
	List(ctx context.Context, q domain.ListQuery) ([]domain.Record, int, error)
	Types(ctx context.Context) ([]string, error)
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

const recordCols = `id, post_id, post_title, post_type, previous_date, new_date, date_field, modified_by, modified_at`

func scanRecord(r repokit.Row) (domain.Record, error) {
	var x domain.Record
	err := r.Scan(&x.ID, &x.PostID, &x.PostTitle, &x.PostType, &x.PreviousDate, &x.NewDate, &x.DateField, &x.ModifiedBy, &x.ModifiedAt)
	return x, err
}

func (r *queries) Insert(ctx context.Context, rec domain.NewRecord, modifiedAt string) (int64, error) {
	id, err := store.Scalar[int64](ctx, r.q, `
		INSERT INTO bd_date_history (post_id, post_title, post_type, previous_date, new_date, date_field, modified_by, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		rec.PostID, rec.PostTitle, rec.PostType, rec.PreviousDate, rec.NewDate, rec.DateField, rec.ModifiedBy, modifiedAt)
	if err != nil {
		return 0, perr.FromDB(err, "insert history for post %d", rec.PostID)
	}
	return id, nil
}

func (r *queries) Get(ctx context.Context, id int64) (domain.Record, error) {
	rec, err := store.One(ctx, r.q, scanRecord, `SELECT `+recordCols+` FROM bd_date_history WHERE id = $1`, id)
	if err != nil {
		return domain.Record{}, perr.FromDB(err, "history record %d", id)
	}
	return rec, nil
}

func (r *queries) Delete(ctx context.Context, id int64) error {
	if err := store.ExecOne(ctx, r.q, `DELETE FROM bd_date_history WHERE id = $1`, id); err != nil {
		return perr.FromDB(err, "history record %d", id)
	}
	return nil
}

// DeleteBefore drops rows modified strictly before cutoff
func (r *queries) DeleteBefore(ctx context.Context, cutoff string) (int64, error) {
	tag, err := store.Exec(ctx, r.q, `DELETE FROM bd_date_history WHERE modified_at < $1`, cutoff)
	if err != nil {
		return 0, perr.FromDB(err, "sweep history")
	}
	return tag.RowsAffected(), nil
}

func (r *queries) Clear(ctx context.Context) (int64, error) {
	tag, err := store.Exec(ctx, r.q, `DELETE FROM bd_date_history`)
	if err != nil {
		return 0, perr.FromDB(err, "clear history")
	}
	return tag.RowsAffected(), nil
}

// where builds the AND-ed filter clause; date bounds cover whole days
func where(q domain.ListQuery) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, cond+" $"+strconv.Itoa(len(args)))
	}
	if q.EntityType != "" {
		add("post_type =", q.EntityType)
	}
	if q.DateField != "" {
		add("date_field =", q.DateField)
	}
	if q.DateFrom != "" {
		add("modified_at >=", q.DateFrom+" 00:00:00")
	}
	if q.DateTo != "" {
		add("modified_at <=", q.DateTo+" 23:59:59")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List pages the ledger; q must already be normalized
func (r *queries) List(ctx context.Context, q domain.ListQuery) ([]domain.Record, int, error) {
	cond, args := where(q)

	total, err := store.Scalar[int64](ctx, r.q, `SELECT COUNT(*) FROM bd_date_history`+cond, args...)
	if err != nil {
		return nil, 0, perr.FromDB(err, "count history")
	}

	// sort column and order come from the whitelist, never from raw input
	order := " ORDER BY " + domain.SortColumn(q.SortBy) + " " + domain.SortOrder(q.SortOrder) + ", id " + domain.SortOrder(q.SortOrder)
	page := " LIMIT " + store.Placeholders(len(args)+1, 1) + " OFFSET " + store.Placeholders(len(args)+2, 1)
	args = append(args, q.PageSize, (q.Page-1)*q.PageSize)

	rows, err := store.Many(ctx, r.q, scanRecord, `SELECT `+recordCols+` FROM bd_date_history`+cond+order+page, args...)
	if err != nil {
		return nil, 0, perr.FromDB(err, "list history")
	}
	return rows, int(total), nil
}

func (r *queries) Types(ctx context.Context) ([]string, error) {
	out, err := store.Many(ctx, r.q, func(row repokit.Row) (string, error) {
		var s string
		err := row.Scan(&s)
		return s, err
	}, `SELECT DISTINCT post_type FROM bd_date_history ORDER BY post_type`)
	if err != nil {
		return nil, perr.FromDB(err, "history types")
	}
	return out, nil
}
