// Package modkit provides module wiring and core deps
package modkit

import (
	"pitchfork/internal/adapters/engine/voicevox"
	"pitchfork/internal/platform/config"
	"pitchfork/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	Engine voicevox.Engine
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the optional engine handle
func (d Deps) ZeroOK() bool { return true }
