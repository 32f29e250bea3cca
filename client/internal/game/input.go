package game

import (
	"airspace/client/internal/radar"
	"airspace/shared/protocol"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerEvents collects this frame's presses: a left click and every new
// touch, each as its own event carrying that touch.
func (g *Game) pointerEvents() []radar.PointerEvent {
	var evs []radar.PointerEvent
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		evs = append(evs, radar.PointerEvent{ClientX: float64(mx), ClientY: float64(my)})
	}
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		evs = append(evs, radar.PointerEvent{
			Touches: []radar.TouchPoint{{ClientX: float64(tx), ClientY: float64(ty)}},
		})
	}
	return evs
}

// handlePointer routes a press. While the game-over overlay is up only its
// buttons respond.
func (g *Game) handlePointer(ev radar.PointerEvent) {
	x, y := ev.Client()
	ix, iy := int(x), int(y)

	if g.loop.Session().GameOver {
		switch {
		case g.lay.Restart.Hit(ix, iy):
			g.restart()
		case g.lay.Copy.Hit(ix, iy):
			g.copySummary()
		}
		return
	}
	if g.lay.Clear.Hit(ix, iy) {
		g.clear()
		return
	}
	if g.lay.View.Contains(x, y) {
		g.loop.Tap(radar.MapPointer(ev, g.lay.View, float64(g.simW), float64(g.simH)))
	}
}

func (g *Game) handleKeys() {
	over := g.loop.Session().GameOver
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyC) && !over:
		g.clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyN) && !over:
		g.loop.CreateAircraft(radar.Point{X: protocol.DefaultSpawnX, Y: protocol.DefaultSpawnY})
	case inpututil.IsKeyJustPressed(ebiten.KeyR) && over:
		g.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyY) && over:
		g.copySummary()
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		g.showDebug = !g.showDebug
	}
}
