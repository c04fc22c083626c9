package module

import rsvc "bulkdate/internal/services/redistribute/service"

// Ports exposes the runner so the CLI and scheduler can drive it
type Ports struct {
	Redistribute rsvc.Service
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
