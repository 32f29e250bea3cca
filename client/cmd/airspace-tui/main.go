// Command airspace-tui plays the radar game in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"airspace/client/internal/api"
	"airspace/client/internal/log"
	"airspace/client/internal/netcfg"
	"airspace/client/internal/tui"

	"github.com/gdamore/tcell/v2"
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

	// The terminal is ours, so everything goes to the log file.
	lg := log.New(cfg.LogLevel, cfg.LogDir)
	if err := run(cfg, lg); err != nil {
		lg.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg netcfg.Config, lg *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	// Restore the terminal before the crash report is printed.
	defer lg.CatchAndReportCrash()
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lg.Infof("Starting terminal client against %s", cfg.APIBase)
	app := tui.New(ctx, screen, api.New(cfg.APIBase, cfg.RequestTimeout), cfg.PollInterval, lg)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
