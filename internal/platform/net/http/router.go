package http

import "net/http"

// Handler is the handler shape every endpoint compiles down to
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the minimal routing surface modules mount against;
// the chi adapter is the only implementation outside tests
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)

	// rarely used, kept for completeness
	Head(path string, h Handler)
	Options(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
