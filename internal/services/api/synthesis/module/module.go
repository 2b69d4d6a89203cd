// Package module wires synthesis into the API using modkit
package module

import (
	"net/http"

	modkit "pitchfork/internal/modkit"
	"pitchfork/internal/modkit/httpkit"
	str "pitchfork/internal/platform/strings"
	dictdom "pitchfork/internal/services/api/dictionary/domain"
	synthhttp "pitchfork/internal/services/api/synthesis/http"
	synthsvc "pitchfork/internal/services/api/synthesis/service"
)

// Ports declares the cross module ports synthesis consumes
type Ports struct {
	// Entries is the dictionary read surface, owned by the dictionary module
	Entries dictdom.LoaderPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc synthsvc.Service
}

// New constructs a synthesis module with the provided dependencies and options
// Requires the dictionary loader port injected via modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("synthesis"),
		modkit.WithPrefix("/synthesize"),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Entries == nil {
		panic("synthesis module requires a dictionary loader port")
	}

	svc := synthsvc.New(deps.Engine, ports.Entries)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		synthhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
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

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return nil }
