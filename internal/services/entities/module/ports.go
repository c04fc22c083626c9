package module

import entsvc "bulkdate/internal/services/entities/service"

// Ports is what other modules may pull from entities
type Ports struct {
	Entities entsvc.Service
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
