//go:build !android

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"airspace/client/internal/game"
	"airspace/client/internal/log"
	"airspace/client/internal/netcfg"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := netcfg.Default()
	flag.StringVar(&cfg.APIBase, "api", cfg.APIBase, "simulation server API base URL")
	flag.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "state polling period")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", 0, "per-request timeout (0: none)")
	flag.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.StringVar(&cfg.LogDir, "logdir", cfg.LogDir, "log directory (default: profile config dir)")
	flag.Parse()
	cfg = cfg.Normalize()

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cfg.LogDir, err)
		os.Exit(1)
	}
	lg := log.New(cfg.LogLevel, cfg.LogDir)
	defer lg.CatchAndReportCrash()

	game.SetPlatform("desktop")
	game.FitToScreen()
	g := game.New(cfg, lg)
	defer g.Close()

	start := time.Now()
	if err := ebiten.RunGame(g); err != nil {
		lg.Errorf("RunGame: %v", err)
		os.Exit(1)
	}
	lg.Infof("Exiting after %s", time.Since(start).Round(time.Second))
}
