// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "vindex/internal/platform/net/http"
)

// Module mirrors the modkit contract
// kept as a sibling so a module exporting its own ports type avoids import knots
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
