package repo

import (
	"context"
	"math"
	"testing"

	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/store/storetest"
	"bulkdate/internal/services/history/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	r   Repo
	ctx context.Context
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := storetest.Open(t, Migrations...)
	return fixture{r: NewSQL().Bind(st.DB), ctx: context.Background()}
}

func (f fixture) insert(t *testing.T, postID int64, typ, field, prev, next, at string) int64 {
	t.Helper()
	id, err := f.r.Insert(f.ctx, domain.NewRecord{
		PostID: postID, PostTitle: "T", PostType: typ,
		PreviousDate: prev, NewDate: next, DateField: field, ModifiedBy: 7,
	}, at)
	require.NoError(t, err)
	return id
}

func TestInsertGetDelete(t *testing.T) {
	f := newFixture(t)
	id := f.insert(t, 12, "post", "post_date", "2024-01-01 00:00:00", "2024-02-01 00:00:00", "2024-03-01 10:00:00")

	rec, err := f.r.Get(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(12), rec.PostID)
	assert.Equal(t, "2024-01-01 00:00:00", rec.PreviousDate)
	assert.Equal(t, int64(7), rec.ModifiedBy)
	assert.Equal(t, "2024-03-01 10:00:00", rec.ModifiedAt)

	require.NoError(t, f.r.Delete(f.ctx, id))
	_, err = f.r.Get(f.ctx, id)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound), "got %v", err)
	err = f.r.Delete(f.ctx, id)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound), "got %v", err)
}

func TestDeleteBeforeAndClear(t *testing.T) {
	f := newFixture(t)
	f.insert(t, 1, "post", "post_date", "a", "b", "2024-01-01 00:00:00")
	f.insert(t, 2, "post", "post_date", "a", "b", "2024-01-10 00:00:00")
	keep := f.insert(t, 3, "post", "post_date", "a", "b", "2024-01-20 00:00:00")

	n, err := f.r.DeleteBefore(f.ctx, "2024-01-10 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = f.r.DeleteBefore(f.ctx, "2024-01-15 00:00:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.r.Get(f.ctx, keep)
	require.NoError(t, err)

	n, err = f.r.Clear(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestList_FiltersSortAndPaging(t *testing.T) {
	f := newFixture(t)
	f.insert(t, 1, "post", "post_date", "2023-01-01 00:00:00", "2024-01-05 00:00:00", "2024-01-01 08:00:00")
	f.insert(t, 2, "post", "post_modified", "2023-01-02 00:00:00", "2024-01-04 00:00:00", "2024-01-02 08:00:00")
	f.insert(t, 3, "page", "post_date", "2023-01-03 00:00:00", "2024-01-03 00:00:00", "2024-01-02 23:59:59")
	f.insert(t, 4, "book", "post_date", "2023-01-04 00:00:00", "2024-01-02 00:00:00", "2024-01-03 00:00:00")

	all := domain.ListQuery{}.Normalize(10)
	rows, total, err := f.r.List(f.ctx, all)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []int64{4, 3, 2, 1}, postIDs(rows), "default modified_at DESC")

	q := domain.ListQuery{EntityType: "post", SortBy: "previous_date", SortOrder: "asc"}.Normalize(10)
	rows, total, err = f.r.List(f.ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []int64{1, 2}, postIDs(rows))

	q = domain.ListQuery{DateField: "post_date", DateFrom: "2024-01-02", DateTo: "2024-01-02"}.Normalize(10)
	rows, total, err = f.r.List(f.ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 1, total, "day bounds are inclusive")
	assert.Equal(t, []int64{3}, postIDs(rows))

	q = domain.ListQuery{SortBy: "new_date", SortOrder: "ASC", Page: 2, PageSize: 3}.Normalize(10)
	rows, total, err = f.r.List(f.ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []int64{1}, postIDs(rows))

	q = domain.ListQuery{Page: math.MaxInt}.Normalize(10)
	rows, total, err = f.r.List(f.ctx, q)
	require.NoError(t, err, "a huge page is clamped, not overflowed into a negative offset")
	assert.Equal(t, 4, total)
	assert.Empty(t, rows)
}

func TestTypes(t *testing.T) {
	f := newFixture(t)
	types, err := f.r.Types(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, types)

	f.insert(t, 1, "post", "post_date", "a", "b", "2024-01-01 00:00:00")
	f.insert(t, 2, "page", "post_date", "a", "b", "2024-01-01 00:00:00")
	f.insert(t, 3, "post", "post_date", "a", "b", "2024-01-01 00:00:00")

	types, err = f.r.Types(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"page", "post"}, types)
}

func postIDs(rs []domain.Record) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.PostID)
	}
	return out
}
