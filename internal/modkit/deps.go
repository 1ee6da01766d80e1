// Package modkit provides module wiring and core deps
package modkit

import (
	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/platform/config"
	"slotwatch/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	Pack *markerpack.Pack
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional fields
func (d Deps) ZeroOK() bool { return true }
