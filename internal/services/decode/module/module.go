// Package module wires VIN decoding into HTTP via modkit
package module

import (
	"net/http"
	"time"

	modkit "vindex/internal/modkit"
	"vindex/internal/modkit/httpkit"
	"vindex/internal/modkit/repokit"
	str "vindex/internal/platform/strings"

	"vindex/internal/adapters/vpic"
	auditdom "vindex/internal/services/audit/domain"
	"vindex/internal/services/decode/cache"
	"vindex/internal/services/decode/domain"
	decodehttp "vindex/internal/services/decode/http"
	"vindex/internal/services/decode/service"
)

// AuditPorts declares the injected audit ports; both may be nil
type AuditPorts struct {
	Recorder auditdom.RecorderPort
	Query    auditdom.QueryPort
}

// Ports exposes the decode service for cross-module lookups
type Ports struct {
	Service domain.ServicePort
}

// Module implements the decode module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Service
}

// New constructs the decode module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("decode"),
		modkit.WithPrefix("/vin"),
	}, opts...)...)

	o := FromConfig(deps.Cfg)

	var audit AuditPorts
	if p, ok := b.Ports.(AuditPorts); ok {
		audit = p
	}

	breaker := vpic.NewBreaker(o.BreakerThreshold, o.BreakerCooldown)
	client := vpic.NewClient(vpic.Options{
		BaseURL:        o.BaseURL,
		UserAgent:      o.UserAgent,
		ConnectTimeout: o.ConnectTimeout,
		ReadTimeout:    o.ReadTimeout,
		MaxRetries:     o.MaxRetries,
		BackoffBase:    o.BackoffBase,
	}, breaker)

	var c domain.CachePort
	switch {
	case o.CacheBackend == "postgres" && deps.PG != nil:
		tx := repokit.WithBeginHooks(deps.PG, cache.StatementTimeoutHook(5*time.Second))
		c = repokit.MustBind[domain.CachePort](cache.PGBinder(o.CacheTTL), tx)
	default:
		c = cache.NewMemory(o.CacheTTL)
	}

	svc := service.New(c, client, audit.Recorder)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		decodehttp.Register(r, m.svc, audit.Query)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
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

// Name is the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares is the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
