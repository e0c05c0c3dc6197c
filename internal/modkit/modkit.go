package modkit

import (
	phttp "vindex/internal/platform/net/http"
)

// Module is the common surface for API modules like decode and audit:
// mount routes, expose ports, report a name. Keep it tiny
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module-specific port bundle for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
// modules expose New(deps Deps, opts ...Option) Module in this shape
type Builder func(Deps, ...Option) Module
