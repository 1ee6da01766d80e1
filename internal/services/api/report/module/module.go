// Package module wires the report API endpoints
package module

import (
	"net/http"

	modkit "slotwatch/internal/modkit"
	phttp "slotwatch/internal/platform/net/http"
	str "slotwatch/internal/platform/strings"

	reporthttp "slotwatch/internal/services/api/report/http"
	statusdom "slotwatch/internal/services/status/domain"
)

// Ports are the cross-module dependencies the report API needs
type Ports struct {
	Evaluator statusdom.EvaluatorPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports

	subrouter func(phttp.Router) phttp.Router
	register  func(phttp.Router)
}

// New constructs the report module. The evaluator port is injected via
// modkit.WithPorts(report.Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("report"),
		modkit.WithPrefix("/report"),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok {
		panic("report module: expected WithPorts(report/module.Ports)")
	}
	if ports.Evaluator == nil {
		panic("report module: Ports missing Evaluator")
	}
	if deps.Pack == nil {
		panic("report module: Deps missing Pack")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		ports:     ports,
		subrouter: b.Subrouter,
	}

	external := b.Register
	m.register = func(r phttp.Router) {
		reporthttp.Register(r, reporthttp.Deps{
			Evaluator:    ports.Evaluator,
			HostTimezone: deps.Pack.HostTimezone,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route(m.prefix, func(rr phttp.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "report") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
