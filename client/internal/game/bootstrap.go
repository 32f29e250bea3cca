//go:build !android

package game

import (
	"airspace/client/internal/game/layout"
	"airspace/shared/protocol"

	"github.com/hajimehoshi/ebiten/v2"
)

func init() {
	ebiten.SetWindowSize(protocol.ScreenW+layout.PanelW, protocol.ScreenH)
	ebiten.SetWindowTitle(protocol.GameName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(320, 480, -1, -1)

	// Draw fills the whole screen every frame.
	ebiten.SetScreenClearedEveryFrame(false)
}

// FitToScreen shrinks the initial window when the monitor is smaller than
// the default size.
func FitToScreen() {
	mw, mh := ebiten.ScreenSizeInFullscreen() // monitor size
	w, h := protocol.ScreenW+layout.PanelW, protocol.ScreenH

	margin := 48 // titlebar/taskbar
	maxW, maxH := mw-margin, mh-margin
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	ebiten.SetWindowSize(int(float64(w)*scale), int(float64(h)*scale))
}
