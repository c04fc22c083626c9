// Package modkit builds API modules: shared deps, options and the Module surface the api package mounts
package modkit

import "bulkdate/internal/modkit/httpkit"

// Module is what the api package mounts; Ports is what it registers for other modules
type Module interface {
	Name() string
	MountRoutes(r httpkit.Router)
	Ports() any
}
