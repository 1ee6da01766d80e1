package main

import (
	"context"

	"slotwatch/internal/platform/config"
	"slotwatch/internal/platform/logger"
	phttp "slotwatch/internal/platform/net/http"

	"slotwatch/internal/adapters/logsource/fs"
	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	logsCfg := root.Prefix("CORE_LOGS_") // log share settings live under CORE_LOGS_*

	// bring up logging early
	l := logger.Get()

	// marker pack: embedded by default, overridable with CORE_PACK_FILE
	pack, err := loadPack(root)
	if err != nil {
		l.Panic().Err(err).Msg("marker pack load failed")
	}

	// log source over the mounted share
	src, err := fs.New(fs.Options{
		Root:     logsCfg.MustString("ROOT"),
		LinkBase: logsCfg.MayString("LINK_BASE", ""),
	})
	if err != nil {
		l.Panic().Err(err).Msg("log source init failed")
	}

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Pack:           pack,
			Source:         src,
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

func loadPack(root config.Conf) (*markerpack.Pack, error) {
	if path := root.MayString("CORE_PACK_FILE", ""); path != "" {
		return markerpack.LoadFile(path)
	}
	return markerpack.Load()
}
