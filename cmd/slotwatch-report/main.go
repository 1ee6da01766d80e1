package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"slotwatch/internal/modkit"
	"slotwatch/internal/modkit/module"
	"slotwatch/internal/platform/config"
	"slotwatch/internal/platform/logger"

	"slotwatch/internal/adapters/logsource/fs"
	"slotwatch/internal/core/markerpack"
	"slotwatch/internal/core/window"

	statusdom "slotwatch/internal/services/status/domain"
	statusmod "slotwatch/internal/services/status/module"
	"slotwatch/internal/services/status/render"
)

func main() {
	root := config.New()
	logsCfg := root.Prefix("CORE_LOGS_")

	l := logger.Get()

	var (
		fDate    = flag.String("date", "", "evaluation date YYYY-MM-DD (default: today in the host timezone)")
		fRegions = flag.String("regions", "", "comma separated region ids (default: all)")
		fMode    = flag.String("mode", "text", "output mode: text | html")
		fPack    = flag.String("pack", "", "marker pack file (default: embedded pack)")
		fRoot    = flag.String("root", "", "log share root (default: CORE_LOGS_ROOT)")
		fLink    = flag.String("link-base", "", "base used for report hyperlinks (default: CORE_LOGS_LINK_BASE)")
		fWorkers = flag.Int("workers", 0, "evaluation concurrency (default: CORE_STATUS_WORKERS)")
		fOut     = flag.String("out", "", "write output to file instead of stdout")
	)
	flag.Parse()

	if *fMode != "text" && *fMode != "html" {
		l.Panic().Str("mode", *fMode).Msg("bad -mode, want text or html")
	}

	pack, err := loadPack(*fPack)
	if err != nil {
		l.Panic().Err(err).Msg("marker pack load failed")
	}

	src, err := fs.New(fs.Options{
		Root:     pick(*fRoot, logsCfg.MayString("ROOT", "")),
		LinkBase: pick(*fLink, logsCfg.MayString("LINK_BASE", "")),
	})
	if err != nil {
		l.Panic().Err(err).Msg("log source init failed")
	}

	date, err := resolveDate(*fDate, pack.HostTimezone)
	if err != nil {
		l.Panic().Err(err).Msg("bad -date")
	}

	var regions []string
	for _, part := range strings.Split(*fRegions, ",") {
		if id := strings.TrimSpace(part); id != "" {
			regions = append(regions, id)
		}
	}

	deps := modkit.Deps{
		Cfg:  root,
		Pack: pack,
		Log:  *l,
	}

	status := statusmod.New(deps, statusmod.Options{Workers: *fWorkers},
		modkit.WithPorts(statusdom.Ports{Source: src}),
	)
	module.Register(status.Name(), status.Ports())

	evaluator := module.MustPortsOf[statusmod.Ports](status).Evaluator
	rep, err := evaluator.Evaluate(context.Background(), statusdom.Input{Date: date, Regions: regions})
	if err != nil {
		l.Fatal().Err(err).Msg("evaluation failed")
	}

	out := render.Text(rep)
	if *fMode == "html" {
		page, err := render.HTML(rep)
		if err != nil {
			l.Fatal().Err(err).Msg("render failed")
		}
		out = page
	}

	if *fOut == "" {
		if _, err := os.Stdout.WriteString(out); err != nil {
			l.Fatal().Err(err).Msg("write output failed")
		}
		return
	}
	if err := os.WriteFile(*fOut, []byte(out), 0o644); err != nil {
		l.Fatal().Err(err).Str("path", *fOut).Msg("write output failed")
	}
	l.Info().Str("path", *fOut).Str("run_id", rep.RunID).Msg("report written")
}

func loadPack(path string) (*markerpack.Pack, error) {
	if path != "" {
		return markerpack.LoadFile(path)
	}
	return markerpack.Load()
}

func resolveDate(raw, hostTZ string) (window.Date, error) {
	if raw != "" {
		return window.ParseDate(raw)
	}
	loc, err := time.LoadLocation(hostTZ)
	if err != nil {
		return window.Date{}, err
	}
	return window.DateOf(time.Now().In(loc)), nil
}

func pick(flagVal, cfgVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return cfgVal
}
