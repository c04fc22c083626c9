package domain

import "context"

// ServicePort is the read surface the entities module exposes over http
type ServicePort interface {
	Post(ctx context.Context, id int64) (Post, error)
	KnownTypes(ctx context.Context) ([]string, error)
}
