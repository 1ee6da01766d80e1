// Package api provides the HTTP API for the application
package api

import (
	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/platform/config"
	phttp "slotwatch/internal/platform/net/http"

	"slotwatch/internal/modkit"
	"slotwatch/internal/modkit/httpkit"
	"slotwatch/internal/modkit/module"

	metamod "slotwatch/internal/services/api/meta/module"
	reportmod "slotwatch/internal/services/api/report/module"

	statusdom "slotwatch/internal/services/status/domain"
	statusmod "slotwatch/internal/services/status/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Pack   *markerpack.Pack

	// Source is the log source the evaluator reads from, built in main
	Source statusdom.SourcePort

	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:  opt.Config,
		Pack: opt.Pack,
	}

	// Construct the status module first and extract its Evaluator port
	status := statusmod.New(deps, statusmod.Options{},
		modkit.WithPorts(statusdom.Ports{
			Source: opt.Source,
		}),
	)
	evaluator := module.MustPortsOf[statusmod.Ports](status).Evaluator

	// Inject that Evaluator into the report API module
	report := reportmod.New(
		deps,
		modkit.WithPorts(reportmod.Ports{
			Evaluator: evaluator,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		status, // include status so its ports are registered
		report, // API module that depends on the status evaluator
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
