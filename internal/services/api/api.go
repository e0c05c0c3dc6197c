// Package api provides the HTTP API for the application
package api

import (
	"context"

	"vindex/internal/platform/config"
	"vindex/internal/platform/logger"
	phttp "vindex/internal/platform/net/http"
	"vindex/internal/platform/store"

	"vindex/internal/modkit"
	"vindex/internal/modkit/httpkit"
	"vindex/internal/modkit/module"
	"vindex/internal/modkit/swaggerkit"

	auditmod "vindex/internal/services/audit/module"
	decodemod "vindex/internal/services/decode/module"
	metamod "vindex/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Workers are the long lived loops the binary must drive alongside the
// HTTP server; nil entries mean the backend behind them is disabled
type Workers struct {
	Audit func(ctx context.Context) error
}

// Mount mounts the API service onto the given router and returns the
// background workers the caller owns
func Mount(r phttp.Router, opt Options) Workers {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the audit module first and inject its ports into decode
	audit := auditmod.New(deps)
	ports := module.MustPortsOf[auditmod.Ports](audit)

	decode := decodemod.New(
		deps,
		modkit.WithPorts(decodemod.AuditPorts{
			Recorder: ports.Recorder,
			Query:    ports.Query,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		audit,
		decode,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	var w Workers
	if ports.Runner != nil {
		w.Audit = ports.Runner.Run
	}
	return w
}
