// Package mobile is the ebitenmobile bind target.
package mobile

import (
	"airspace/client/internal/game"
	"airspace/client/internal/log"
	"airspace/client/internal/netcfg"

	"github.com/hajimehoshi/ebiten/v2/mobile"
)

func init() {
	cfg := netcfg.Default().Normalize()
	game.SetPlatform("android")
	mobile.SetGame(game.New(cfg, log.New(cfg.LogLevel, cfg.LogDir)))
}

// Dummy keeps gomobile bind from producing an empty package.
func Dummy() {}
