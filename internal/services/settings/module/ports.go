package module

import setsvc "bulkdate/internal/services/settings/service"

// Ports exposes the settings service to the other modules
type Ports struct {
	Settings setsvc.Service
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
