package httpkit

import (
	"net/http"

	phttp "vindex/internal/platform/net/http"
)

// PostJSON mounts a JSON handler under POST.
// The platform handler binds and validates the payload before h runs
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get mounts a body-less handler under GET with the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}
