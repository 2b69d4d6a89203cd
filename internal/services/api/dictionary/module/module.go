// Package module wires the dictionary into the API using modkit
package module

import (
	"net/http"

	modkit "pitchfork/internal/modkit"
	"pitchfork/internal/modkit/httpkit"
	"pitchfork/internal/platform/config"
	str "pitchfork/internal/platform/strings"
	dicthttp "pitchfork/internal/services/api/dictionary/http"
	dictrepo "pitchfork/internal/services/api/dictionary/repo"
	dictsvc "pitchfork/internal/services/api/dictionary/service"
)

// Options configures the dictionary module
type Options struct {
	// DataDir is the directory holding the dictionary file
	DataDir string
}

// FromConfig reads module options from DICT_ prefixed keys
func FromConfig(cfg config.Conf) Options {
	return Options{
		DataDir: cfg.Prefix("DICT_").MayString("DATA_DIR", "./data"),
	}
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc dictsvc.Service
}

// New constructs a dictionary module with the provided dependencies and options
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("dictionary"),
		modkit.WithPrefix("/dictionary"),
	}, opts...)...)

	store := dictrepo.NewFile(o.DataDir)
	svc := dictsvc.New(store, deps.Engine)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Loader: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		dicthttp.Register(r, m.svc)
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
