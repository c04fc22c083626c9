package domain

import (
	"context"
	"time"

	entdomain "bulkdate/internal/services/entities/domain"
)

// ServicePort is the redistribution surface exposed over http and the cli
type ServicePort interface {
	Run(ctx context.Context, in RunInput) (Report, error)
	Presets(now time.Time) Presets
}

// Entities selects targets and writes their dates
type Entities interface {
	SelectPosts(ctx context.Context, categories []int64, tags []string) ([]entdomain.Post, error)
	SelectPages(ctx context.Context, ids []int64) (found []entdomain.Post, missing []int64, err error)
	SelectCustom(ctx context.Context, postType string, tax map[string][]int64, relation string) ([]entdomain.Post, error)
	SelectComments(ctx context.Context) ([]entdomain.Comment, error)

	WritePostDates(ctx context.Context, id int64, fields []string, local, gmt string) error
	WriteCommentDate(ctx context.Context, id int64, local, gmt string) error
}

// Cache is the host object cache; both calls are fire and forget
type Cache interface {
	Invalidate(key string)
	Flush()
}
