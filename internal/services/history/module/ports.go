package module

import hsvc "bulkdate/internal/services/history/service"

// Ports exposes the ledger, including its Recorder side, to other modules
type Ports struct {
	History hsvc.Service
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
