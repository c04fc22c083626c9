// Package module wires settings into the API using modkit
package module

import (
	modkit "bulkdate/internal/modkit"
	"bulkdate/internal/modkit/httpkit"
	sethttp "bulkdate/internal/services/settings/http"
	setrepo "bulkdate/internal/services/settings/repo"
	setsvc "bulkdate/internal/services/settings/service"
)

// Module implements the settings module
type Module struct {
	modkit.Base
	ports any
}

// New constructs the settings module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("settings"), modkit.WithPrefix("/settings")}, opts...)...)
	deps = deps.Defaulted()

	svc := setsvc.New(deps.DB, setrepo.NewSQL(), deps.Log)
	return &Module{
		Base:  b.Base(func(r httpkit.Router) { sethttp.Register(r, svc) }),
		ports: Ports{Settings: svc},
	}
}
