package modkit

import (
	"bulkdate/internal/modkit/httpkit"
	str "bulkdate/internal/platform/strings"
)

// Built is the resolved option set
type Built struct {
	Name   string
	Prefix string
	Ports  any
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Base implements Name and MountRoutes for a module; embed it and supply Ports
type Base struct {
	name     string
	prefix   string
	register func(httpkit.Router)
}

// Base binds register to the resolved name and prefix
func (b Built) Base(register func(httpkit.Router)) Base {
	return Base{name: b.Name, prefix: b.Prefix, register: register}
}

// Name panics when the module was built without a name
func (b Base) Name() string { return str.MustString(b.name, "module name") }

// MountRoutes registers the module routes under its prefix; prefix "/" mounts them at the
// router root and an empty prefix panics
func (b Base) MountRoutes(r httpkit.Router) {
	if b.prefix == "/" {
		r.Group(b.register)
		return
	}
	r.Route(str.MustPrefix(b.prefix), b.register)
}
