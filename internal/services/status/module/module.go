// Package module implements the status module
package module

import (
	"net/http"

	"slotwatch/internal/modkit"
	phttp "slotwatch/internal/platform/net/http"
	"slotwatch/internal/services/status/domain"
	"slotwatch/internal/services/status/service"
)

// Ports exposed by the status module
type Ports struct {
	Evaluator domain.EvaluatorPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new status module. The pack comes from deps; the log
// source is injected via WithPorts(status/domain.Ports)
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("status"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("status module: expected WithPorts(status/domain.Ports)")
	}
	if ports.Source == nil {
		panic("status module: Ports missing Source")
	}
	if deps.Pack == nil {
		panic("status module: Deps missing Pack")
	}

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}

	m := &Module{deps: deps}
	m.ports = Ports{
		Evaluator: service.New(ports.Source, deps.Pack, service.Config{Workers: cfg.Workers}),
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "status" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ phttp.Router) {}
