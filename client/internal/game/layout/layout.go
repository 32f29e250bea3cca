// Package layout places the radar, side panel and buttons for a given
// window size. It has no ebiten dependency so it can be tested headless.
package layout

import (
	"airspace/client/internal/radar"
)

const (
	PanelW      = 240 // side panel, wide windows
	PanelH      = 220 // bottom panel, narrow (portrait) windows
	NarrowBelow = 640

	Pad  = 8
	BtnW = 120
	BtnH = 32
	RowH = 16

	OverlayW = 380
	OverlayH = 170
)

type Rect struct{ X, Y, W, H int }

func (r Rect) Hit(mx, my int) bool {
	return mx >= r.X && mx <= r.X+r.W && my >= r.Y && my <= r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

type Layout struct {
	W, H  int
	View  radar.Viewport // where the radar image is stretched to
	Panel Rect
	Clear Rect

	// Game-over overlay
	Overlay Rect
	Restart Rect
	Copy    Rect
}

// Compute splits a w×h window. Wide windows get a panel on the right,
// narrow ones a panel at the bottom. The radar is stretched to fill the
// rest, so its scale generally differs per axis.
func Compute(w, h int) Layout {
	l := Layout{W: w, H: h}
	if w < NarrowBelow {
		rh := max(h-PanelH, 1)
		l.View = radar.Viewport{Width: float64(w), Height: float64(rh)}
		l.Panel = Rect{X: 0, Y: rh, W: w, H: h - rh}
	} else {
		rw := w - PanelW
		l.View = radar.Viewport{Width: float64(rw), Height: float64(h)}
		l.Panel = Rect{X: rw, Y: 0, W: PanelW, H: h}
	}
	l.Clear = Rect{X: l.Panel.X + Pad, Y: l.Panel.Y + Pad + 4*RowH + Pad, W: BtnW, H: BtnH}

	ow, oh := min(OverlayW, w-2*Pad), min(OverlayH, h-2*Pad)
	l.Overlay = Rect{X: (w - ow) / 2, Y: (h - oh) / 2, W: ow, H: oh}
	by := l.Overlay.Y + l.Overlay.H - BtnH - 2*Pad
	l.Restart = Rect{X: l.Overlay.X + 2*Pad, Y: by, W: BtnW, H: BtnH}
	l.Copy = Rect{X: l.Overlay.X + l.Overlay.W - BtnW - 2*Pad, Y: by, W: BtnW, H: BtnH}
	return l
}

// ConflictListTop is the y where the conflict list starts in the panel.
func (l Layout) ConflictListTop() int {
	return l.Clear.Y + l.Clear.H + 2*Pad
}
