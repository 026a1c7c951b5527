// Package modkit provides module wiring and core deps
package modkit

import (
	"github.com/lambilly/hass-tian-free/internal/platform/clock"
	"github.com/lambilly/hass-tian-free/internal/platform/config"
	"github.com/lambilly/hass-tian-free/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log   logger.Logger
	Cfg   config.Conf
	Clock clock.Clock

	// Entry identifies this bridge instance; unit IDs are derived from it
	Entry string
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check the optional clock
func (d Deps) ZeroOK() bool { return true }
