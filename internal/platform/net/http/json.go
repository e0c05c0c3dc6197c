package http

import (
	"net/http"

	"vindex/internal/platform/net/http/bind"
)

// JSONHandler adapts a typed JSON handler to a platform Handler;
// bind failures come back through the error envelope
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
