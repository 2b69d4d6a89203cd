// Package api provides the HTTP API for the application
package api

import (
	"pitchfork/internal/adapters/engine/voicevox"
	"pitchfork/internal/platform/config"
	"pitchfork/internal/platform/logger"
	phttp "pitchfork/internal/platform/net/http"

	"pitchfork/internal/modkit"
	"pitchfork/internal/modkit/httpkit"
	"pitchfork/internal/modkit/module"
	"pitchfork/internal/modkit/swaggerkit"

	dictmod "pitchfork/internal/services/api/dictionary/module"
	metamod "pitchfork/internal/services/api/meta/module"
	synthmod "pitchfork/internal/services/api/synthesis/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Engine         voicevox.Engine
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:    opt.Config,
		Engine: opt.Engine,
	}

	// Construct the dictionary module first and extract its Loader port
	dictionary := dictmod.New(deps, dictmod.FromConfig(deps.Cfg))
	loader := module.MustPortsOf[dictmod.Ports](dictionary).Loader

	// Inject that Loader into the synthesis module
	synthesis := synthmod.New(
		deps,
		modkit.WithPorts(synthmod.Ports{
			Entries: loader,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		dictionary,
		synthesis,
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
}
