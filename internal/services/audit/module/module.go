// Package module wires the decode audit trail into the application
package module

import (
	"context"
	"net/http"

	modkit "vindex/internal/modkit"
	"vindex/internal/modkit/httpkit"

	"vindex/internal/services/audit/domain"
	"vindex/internal/services/audit/repo"
	"vindex/internal/services/audit/service"
)

// Runner is a long lived worker the binary drives
type Runner interface {
	Run(ctx context.Context) error
}

// Ports exposed by the audit module
// All three are nil when ClickHouse is disabled; consumers must tolerate that
type Ports struct {
	Recorder domain.RecorderPort
	Query    domain.QueryPort
	Runner   Runner
}

// Module implements the audit module
type Module struct {
	deps  modkit.Deps
	name  string
	ports Ports
}

// New constructs the audit module
// Without a ClickHouse seam the module degrades to a no-op: decodes still
// work, they just leave no trail
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("audit")}, opts...)...)

	m := &Module{deps: deps, name: b.Name}
	if deps.CH != nil {
		o := FromConfig(deps.Cfg)
		svc := service.New(repo.NewCH(deps.CH), service.Config{
			BufferSize:    o.BufferSize,
			FlushInterval: o.FlushInterval,
			FlushBatch:    o.FlushBatch,
			HardLimit:     o.HardLimit,
		})
		m.ports = Ports{Recorder: svc, Query: svc, Runner: svc}
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; audit rows are served through the
// decode module's router
func (m *Module) MountRoutes(r httpkit.Router) {}

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }
