// Package module wires entities into the API using modkit
package module

import (
	modkit "bulkdate/internal/modkit"
	"bulkdate/internal/modkit/httpkit"
	enthttp "bulkdate/internal/services/entities/http"
	entrepo "bulkdate/internal/services/entities/repo"
	entsvc "bulkdate/internal/services/entities/service"
)

// Module implements the entities module
type Module struct {
	modkit.Base
	ports any
}

// New constructs the entities module; its routes sit at the api root
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("entities"), modkit.WithPrefix("/")}, opts...)...)
	deps = deps.Defaulted()

	svc := entsvc.New(deps.DB, entrepo.NewSQL(), entsvc.Options{
		Cache:   deps.Cache,
		Metrics: deps.Metrics,
		Log:     deps.Log,
	})
	return &Module{
		Base:  b.Base(func(r httpkit.Router) { enthttp.Register(r, svc) }),
		ports: Ports{Entities: svc},
	}
}
