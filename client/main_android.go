//go:build android

package main

import (
	"airspace/client/internal/game"
	"airspace/client/internal/log"
	"airspace/client/internal/netcfg"

	"github.com/hajimehoshi/ebiten/v2/mobile"
)

func init() {
	cfg := netcfg.Default().Normalize()
	lg := log.New(cfg.LogLevel, cfg.LogDir)
	lg.Info("Android init: SetGame")
	game.SetPlatform("android")
	mobile.SetGame(game.New(cfg, lg))
}

func main() {}
