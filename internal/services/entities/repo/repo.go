// Package repo provides sql access to posts, comments and term relationships
package repo

import (
	"context"
	"fmt"
	"strings"

	"bulkdate/internal/modkit/repokit"
	perr "bulkdate/internal/platform/errors"
	"bulkdate/internal/platform/store"
	"bulkdate/internal/services/entities/domain"
)

// Repo defines the repository contract for entities
type Repo interface {
	Post(ctx context.Context, id int64) (domain.Post, error)
	Published(ctx context.Context, postType string, filters []domain.TaxFilter, rel domain.Relation) ([]domain.Post, error)
	PagesByID(ctx context.Context, ids []int64) ([]domain.Post, error)
	Pages(ctx context.Context) ([]domain.Post, error)
	Comments(ctx context.Context) ([]domain.Comment, error)
	KnownTypes(ctx context.Context) ([]string, error)

	WritePostDates(ctx context.Context, id int64, fields []string, local, gmt string) error
	WriteCommentDate(ctx context.Context, id int64, local, gmt string) error

	InsertPost(ctx context.Context, p domain.Post) (int64, error)
	InsertComment(ctx context.Context, c domain.Comment) (int64, error)
	Relate(ctx context.Context, postID int64, taxonomy string, termID int64, slug string) error
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

// builtin types never listed as custom
var builtinTypes = []string{"post", "page", "attachment", "revision", "nav_menu_item"}

const postCols = `p.id, p.post_title, p.post_type, p.post_status, p.post_date, p.post_date_gmt, p.post_modified, p.post_modified_gmt`

func scanPost(r repokit.Row) (domain.Post, error) {
	var p domain.Post
	err := r.Scan(&p.ID, &p.Title, &p.Type, &p.Status, &p.Date, &p.DateGMT, &p.Modified, &p.ModifiedGMT)
	return p, err
}

func scanComment(r repokit.Row) (domain.Comment, error) {
	var c domain.Comment
	err := r.Scan(&c.ID, &c.PostID, &c.Approved, &c.Date, &c.DateGMT, &c.PostDate)
	return c, err
}

func (r *queries) Post(ctx context.Context, id int64) (domain.Post, error) {
	p, err := store.One(ctx, r.q, scanPost, `SELECT `+postCols+` FROM bd_posts p WHERE p.id = $1`, id)
	if err != nil {
		return domain.Post{}, perr.FromDB(err, "post %d", id)
	}
	return p, nil
}

// publishedQuery builds the selector for published posts of one type
// every filter becomes an EXISTS over bd_term_relationships, joined by rel
func publishedQuery(postType string, filters []domain.TaxFilter, rel domain.Relation) (string, []any) {
	args := []any{postType}
	var b strings.Builder
	b.WriteString(`SELECT ` + postCols + ` FROM bd_posts p WHERE p.post_type = $1 AND p.post_status = 'publish'`)

	var conds []string
	for _, f := range filters {
		if f.Empty() {
			continue
		}
		args = append(args, f.Taxonomy)
		taxArg := len(args)

		var match []string
		if len(f.TermIDs) > 0 {
			match = append(match, "tr.term_id IN ("+store.Placeholders(len(args)+1, len(f.TermIDs))+")")
			for _, id := range f.TermIDs {
				args = append(args, id)
			}
		}
		if len(f.Slugs) > 0 {
			match = append(match, "tr.term_slug IN ("+store.Placeholders(len(args)+1, len(f.Slugs))+")")
			for _, s := range f.Slugs {
				args = append(args, s)
			}
		}
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM bd_term_relationships tr WHERE tr.post_id = p.id AND tr.taxonomy = $%d AND (%s))",
			taxArg, strings.Join(match, " OR "),
		))
	}
	if len(conds) > 0 {
		op := " OR "
		if rel == domain.RelationAnd {
			op = " AND "
		}
		b.WriteString(" AND (" + strings.Join(conds, op) + ")")
	}
	b.WriteString(" ORDER BY p.id")
	return b.String(), args
}

func (r *queries) Published(ctx context.Context, postType string, filters []domain.TaxFilter, rel domain.Relation) ([]domain.Post, error) {
	sql, args := publishedQuery(postType, filters, rel)
	out, err := store.Many(ctx, r.q, scanPost, sql, args...)
	if err != nil {
		return nil, perr.FromDB(err, "select %s", postType)
	}
	return out, nil
}

// PagesByID returns the pages that exist, in the order of ids
func (r *queries) PagesByID(ctx context.Context, ids []int64) ([]domain.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	sql := `SELECT ` + postCols + ` FROM bd_posts p WHERE p.id IN (` + store.Placeholders(1, len(ids)) + `)`
	rows, err := store.Many(ctx, r.q, scanPost, sql, args...)
	if err != nil {
		return nil, perr.FromDB(err, "select pages")
	}
	byID := make(map[int64]domain.Post, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	out := make([]domain.Post, 0, len(rows))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *queries) Pages(ctx context.Context) ([]domain.Post, error) {
	const sql = `SELECT ` + postCols + ` FROM bd_posts p
WHERE p.post_type = 'page' AND p.post_status = 'publish'
ORDER BY p.post_title, p.id`
	out, err := store.Many(ctx, r.q, scanPost, sql)
	if err != nil {
		return nil, perr.FromDB(err, "select pages")
	}
	return out, nil
}

func (r *queries) Comments(ctx context.Context) ([]domain.Comment, error) {
	const sql = `SELECT c.id, c.post_id, c.comment_approved, c.comment_date, c.comment_date_gmt, p.post_date
FROM bd_comments c
JOIN bd_posts p ON p.id = c.post_id
WHERE c.comment_approved = '1' AND p.post_status = 'publish'
ORDER BY c.id`
	out, err := store.Many(ctx, r.q, scanComment, sql)
	if err != nil {
		return nil, perr.FromDB(err, "select comments")
	}
	return out, nil
}

func (r *queries) KnownTypes(ctx context.Context) ([]string, error) {
	args := make([]any, len(builtinTypes))
	for i, t := range builtinTypes {
		args[i] = t
	}
	sql := `SELECT DISTINCT post_type FROM bd_posts WHERE post_type NOT IN (` +
		store.Placeholders(1, len(args)) + `) ORDER BY post_type`
	out, err := store.Many(ctx, r.q, func(row repokit.Row) (string, error) {
		var s string
		err := row.Scan(&s)
		return s, err
	}, sql, args...)
	if err != nil {
		return nil, perr.FromDB(err, "known types")
	}
	return out, nil
}

// WritePostDates sets every field in fields and its GMT twin to the same instant
func (r *queries) WritePostDates(ctx context.Context, id int64, fields []string, local, gmt string) error {
	if len(fields) == 0 {
		return perr.InvalidArgf("no date field to write")
	}
	sets := make([]string, 0, 2*len(fields))
	for _, f := range fields {
		twin := domain.GMTColumn(f)
		if twin == "" {
			return perr.InvalidArgf("unknown date field %q", f)
		}
		sets = append(sets, f+" = $1", twin+" = $2")
	}
	sql := `UPDATE bd_posts SET ` + strings.Join(sets, ", ") + ` WHERE id = $3`
	if err := store.ExecOne(ctx, r.q, sql, local, gmt, id); err != nil {
		return perr.FromDB(err, "post %d", id)
	}
	return nil
}

func (r *queries) WriteCommentDate(ctx context.Context, id int64, local, gmt string) error {
	const sql = `UPDATE bd_comments SET comment_date = $1, comment_date_gmt = $2 WHERE id = $3`
	if err := store.ExecOne(ctx, r.q, sql, local, gmt, id); err != nil {
		return perr.FromDB(err, "comment %d", id)
	}
	return nil
}

func (r *queries) InsertPost(ctx context.Context, p domain.Post) (int64, error) {
	if p.Type == "" {
		p.Type = "post"
	}
	if p.Status == "" {
		p.Status = "publish"
	}
	const sql = `INSERT INTO bd_posts (post_title, post_type, post_status, post_date, post_date_gmt, post_modified, post_modified_gmt)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	id, err := store.Scalar[int64](ctx, r.q, sql, p.Title, p.Type, p.Status, p.Date, p.DateGMT, p.Modified, p.ModifiedGMT)
	if err != nil {
		return 0, perr.FromDB(err, "insert post")
	}
	return id, nil
}

func (r *queries) InsertComment(ctx context.Context, c domain.Comment) (int64, error) {
	if c.Approved == "" {
		c.Approved = "1"
	}
	const sql = `INSERT INTO bd_comments (post_id, comment_approved, comment_date, comment_date_gmt)
VALUES ($1, $2, $3, $4) RETURNING id`
	id, err := store.Scalar[int64](ctx, r.q, sql, c.PostID, c.Approved, c.Date, c.DateGMT)
	if err != nil {
		return 0, perr.FromDB(err, "insert comment")
	}
	return id, nil
}

func (r *queries) Relate(ctx context.Context, postID int64, taxonomy string, termID int64, slug string) error {
	const sql = `INSERT INTO bd_term_relationships (post_id, taxonomy, term_id, term_slug) VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, sql, postID, taxonomy, termID, slug); err != nil {
		return perr.FromDB(err, "relate post %d", postID)
	}
	return nil
}
