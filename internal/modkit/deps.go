// Package modkit provides module wiring and core deps
package modkit

import (
	"vindex/internal/modkit/repokit"
	"vindex/internal/platform/config"
	"vindex/internal/platform/logger"
	"vindex/internal/platform/store"
)

// Deps carries the core dependencies main hands each module:
// logger, config view, the cache db runner, and the audit sink
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// ZeroOK reports that zero-value deps are usable in tests
// consumers still nil-check the optional stores
func (d Deps) ZeroOK() bool { return true }
