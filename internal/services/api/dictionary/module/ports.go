package module

import (
	dictdom "pitchfork/internal/services/api/dictionary/domain"
)

// Ports exposes the dictionary surfaces other modules may consume
type Ports struct {
	// Loader serves read-only entry access for synthesis
	Loader dictdom.LoaderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
