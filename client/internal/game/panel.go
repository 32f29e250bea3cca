package game

import (
	"fmt"
	"image/color"

	"airspace/client/internal/game/layout"
	"airspace/client/internal/radar"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

func drawText(dst *ebiten.Image, s string, x, y int, col color.Color) {
	text.Draw(dst, plain(s), basicfont.Face7x13, x, y, col)
}

func fillRect(dst *ebiten.Image, r rect, col color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col, false)
}

func (g *Game) drawButton(dst *ebiten.Image, r rect, label string) {
	col := colButton
	if mx, my := ebiten.CursorPosition(); hasMouse() && r.Hit(mx, my) {
		col = colButtonHover
	}
	fillRect(dst, r, col)
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, colPanelEdge, false)
	tx := r.X + (r.W-len(label)*glyphW)/2
	ty := r.Y + (r.H+glyphH)/2 - 2
	drawText(dst, label, tx, ty, colText)
}

// pulseColor blends from the highlight back to base as the pulse fades.
func pulseColor(p *radar.Pulse, base color.NRGBA) color.NRGBA {
	k := p.Strength()
	if k == 0 {
		return base
	}
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*k) }
	return color.NRGBA{
		R: mix(base.R, colHighlight.R),
		G: mix(base.G, colHighlight.G),
		B: mix(base.B, colHighlight.B),
		A: 0xff,
	}
}

func (g *Game) drawPanel(dst *ebiten.Image) {
	s := g.loop.Session()
	p := g.lay.Panel
	fillRect(dst, p, colPanelBG)
	if p.Y == 0 {
		vector.StrokeLine(dst, float32(p.X), 0, float32(p.X), float32(p.H), 1, colPanelEdge, false)
	} else {
		vector.StrokeLine(dst, 0, float32(p.Y), float32(p.W), float32(p.Y), 1, colPanelEdge, false)
	}

	x, y := p.X+layout.Pad, p.Y+layout.Pad+glyphH
	for _, line := range s.Counters() {
		col := colText
		switch line {
		case s.ScoreText():
			col = pulseColor(&g.scorePulse, colText)
		case s.LevelText():
			col = pulseColor(&g.levelPulse, colText)
		}
		drawText(dst, line, x, y, col)
		y += layout.RowH
	}

	g.drawButton(dst, g.lay.Clear, "Clear")
	if g.statusTicks > 0 {
		drawText(dst, g.status, g.lay.Clear.X+g.lay.Clear.W+layout.Pad, g.lay.Clear.Y+(g.lay.Clear.H+glyphH)/2-2, colDim)
	}

	y = g.lay.ConflictListTop()
	drawText(dst, "Conflicts", x, y, colDim)
	y += layout.RowH
	bottom := p.Y + p.H - layout.Pad
	if len(s.ConflictList) == 0 {
		drawText(dst, radar.NoConflicts, x, y, colDim)
		return
	}
	for _, e := range s.ConflictList {
		if y+3*layout.RowH > bottom {
			drawText(dst, "...", x, y, colDim)
			return
		}
		if e.Distance == "" {
			drawText(dst, e.Title, x, y, colDim)
			y += layout.RowH
			continue
		}
		status := colResolving
		if e.Resolved {
			status = colResolved
		}
		lines := e.Lines()
		for i, line := range lines {
			col := colText
			if i == len(lines)-1 {
				col = status
			}
			drawText(dst, line, x, y, col)
			y += layout.RowH
		}
		y += layout.Pad / 2
	}
}

func (g *Game) drawGameOver(dst *ebiten.Image) {
	fillRect(dst, rect{W: g.lay.W, H: g.lay.H}, colShade)
	o := g.lay.Overlay
	fillRect(dst, o, colOverlay)
	vector.StrokeRect(dst, float32(o.X), float32(o.Y), float32(o.W), float32(o.H), 2, colResolving, false)

	title := "GAME OVER"
	drawText(dst, title, o.X+(o.W-len(title)*glyphW)/2, o.Y+2*layout.Pad+glyphH, colResolving)
	drawText(dst, g.summary, o.X+(o.W-len(g.summary)*glyphW)/2, o.Y+2*layout.Pad+glyphH+2*layout.RowH, colText)
	if g.statusTicks > 0 {
		drawText(dst, g.status, o.X+(o.W-len(g.status)*glyphW)/2, o.Y+2*layout.Pad+glyphH+3*layout.RowH, colDim)
	}

	g.drawButton(dst, g.lay.Restart, "Restart (R)")
	g.drawButton(dst, g.lay.Copy, "Copy (Y)")
}

func (g *Game) drawDebug(dst *ebiten.Image) {
	msg := fmt.Sprintf("TPS %.0f  FPS %.0f  in flight %d", ebiten.ActualTPS(), ebiten.ActualFPS(), g.loop.InFlight())
	ebitenutil.DebugPrintAt(dst, msg, int(g.lay.View.Left)+4, int(g.lay.View.Top)+4)
}
