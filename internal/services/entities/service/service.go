// Package service implements the entity selectors, the date writers and
// the cached snapshot reads
package service

import (
	"context"
	"slices"

	"bulkdate/internal/modkit/repokit"
	"bulkdate/internal/platform/cache"
	"bulkdate/internal/platform/logger"
	"bulkdate/internal/platform/metrics"
	"bulkdate/internal/services/entities/domain"
	"bulkdate/internal/services/entities/repo"
)

// Service defines the service contract for entities
type Service interface {
	domain.ServicePort

	SelectPosts(ctx context.Context, categories []int64, tags []string) ([]domain.Post, error)
	SelectPages(ctx context.Context, ids []int64) (found []domain.Post, missing []int64, err error)
	SelectCustom(ctx context.Context, postType string, tax map[string][]int64, relation string) ([]domain.Post, error)
	SelectComments(ctx context.Context) ([]domain.Comment, error)

	WritePostDates(ctx context.Context, id int64, fields []string, local, gmt string) error
	WriteCommentDate(ctx context.Context, id int64, local, gmt string) error
}

// Options carries the optional collaborators
type Options struct {
	Cache   cache.Cache
	Metrics metrics.Recorder
	Log     logger.Logger
}

// Svc implements the Service interface
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	cache   cache.Cache
	metrics metrics.Recorder
	log     logger.Logger
}

// New creates a new entities service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("entities.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("entities.Service requires a non nil Repo binder")
	}
	if opt.Cache == nil {
		opt.Cache = cache.Noop{}
	}
	if opt.Metrics == nil {
		opt.Metrics = metrics.Noop{}
	}
	return &Svc{
		Repo:    binder.Bind(db),
		binder:  binder,
		db:      db,
		cache:   opt.Cache,
		metrics: opt.Metrics,
		log:     opt.Log.With().Str("mod", "entities").Logger(),
	}
}

// Post reads a post snapshot through the entity cache
func (s *Svc) Post(ctx context.Context, id int64) (domain.Post, error) {
	key := domain.CacheKey(domain.KindPost, id)
	if p, ok := cache.GetJSON[domain.Post](s.cache, key); ok {
		s.metrics.CacheHit()
		return p, nil
	}
	s.metrics.CacheMiss()

	p, err := s.Repo.Post(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	cache.SetJSON(s.cache, key, p)
	return p, nil
}

// KnownTypes lists the custom post types present in the store
func (s *Svc) KnownTypes(ctx context.Context) ([]string, error) {
	types, err := s.Repo.KnownTypes(ctx)
	if err != nil {
		return nil, err
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}

// SelectPosts returns published posts in any of categories and carrying
// any of tags; the two filters must both match when both are given
func (s *Svc) SelectPosts(ctx context.Context, categories []int64, tags []string) ([]domain.Post, error) {
	filters := []domain.TaxFilter{
		{Taxonomy: "category", TermIDs: categories},
		{Taxonomy: "post_tag", Slugs: tags},
	}
	return s.Repo.Published(ctx, "post", filters, domain.RelationAnd)
}

// SelectPages returns the explicit pages in the given order, or every
// published page by title when ids is empty. Unknown ids are reported back
func (s *Svc) SelectPages(ctx context.Context, ids []int64) ([]domain.Post, []int64, error) {
	if len(ids) == 0 {
		pages, err := s.Repo.Pages(ctx)
		return pages, nil, err
	}

	uniq := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	found, err := s.Repo.PagesByID(ctx, uniq)
	if err != nil {
		return nil, nil, err
	}
	got := make(map[int64]struct{}, len(found))
	for _, p := range found {
		got[p.ID] = struct{}{}
	}
	var missing []int64
	for _, id := range uniq {
		if _, ok := got[id]; !ok {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

// SelectCustom returns published posts of postType filtered by taxonomy terms
func (s *Svc) SelectCustom(ctx context.Context, postType string, tax map[string][]int64, relation string) ([]domain.Post, error) {
	keys := make([]string, 0, len(tax))
	for k := range tax {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	filters := make([]domain.TaxFilter, 0, len(keys))
	for _, k := range keys {
		name := domain.SanitizeKey(k)
		if name == "" {
			continue
		}
		filters = append(filters, domain.TaxFilter{Taxonomy: name, TermIDs: tax[k]})
	}
	return s.Repo.Published(ctx, domain.SanitizeKey(postType), filters, domain.ParseRelation(relation))
}

// SelectComments returns approved comments on published posts
func (s *Svc) SelectComments(ctx context.Context) ([]domain.Comment, error) {
	return s.Repo.Comments(ctx)
}

// WritePostDates overwrites fields with one instant
func (s *Svc) WritePostDates(ctx context.Context, id int64, fields []string, local, gmt string) error {
	return s.Repo.WritePostDates(ctx, id, fields, local, gmt)
}

// WriteCommentDate overwrites a comment date
func (s *Svc) WriteCommentDate(ctx context.Context, id int64, local, gmt string) error {
	return s.Repo.WriteCommentDate(ctx, id, local, gmt)
}
