// @title         Pitchfork API
// @version       0.1.0
// @description   Extended dictionary and intonation overlay service for a VOICEVOX-compatible engine

package main

import (
	"context"

	"pitchfork/internal/adapters/engine/voicevox"
	"pitchfork/internal/platform/config"
	"pitchfork/internal/platform/logger"
	phttp "pitchfork/internal/platform/net/http"

	"pitchfork/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	engineCfg := root.Prefix("ENGINE_") // upstream engine lives under ENGINE_*

	// bring up logging early
	l := logger.Get()

	// upstream VOICEVOX engine client
	engine := voicevox.New(voicevox.Options{
		BaseURL: engineCfg.MayString("URL", "http://localhost:50021"),
		Timeout: engineCfg.MayDuration("TIMEOUT", 0),
	})

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Engine:         engine,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
