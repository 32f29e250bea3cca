package radar

import (
	"math"

	"airspace/shared/protocol"
)

// HitRadius is how close (simulation units) a tap must land to an aircraft.
const HitRadius = 22.0

type Point struct{ X, Y float64 }

type TouchPoint struct{ ClientX, ClientY float64 }

// PointerEvent is a mouse click or a touch start, in client (displayed)
// coordinates. Touch events carry their coordinates in Touches.
type PointerEvent struct {
	ClientX, ClientY float64
	Touches          []TouchPoint
}

// Client returns the event position, preferring the first touch point.
func (ev PointerEvent) Client() (float64, float64) {
	if len(ev.Touches) > 0 {
		return ev.Touches[0].ClientX, ev.Touches[0].ClientY
	}
	return ev.ClientX, ev.ClientY
}

// Viewport is where the radar canvas is displayed, in client coordinates.
type Viewport struct {
	Left, Top, Width, Height float64
}

func (v Viewport) Contains(x, y float64) bool {
	return x >= v.Left && x < v.Left+v.Width && y >= v.Top && y < v.Top+v.Height
}

// MapPointer converts an event to simulation space. Each axis is scaled
// independently so a non-uniformly stretched canvas still maps correctly.
func MapPointer(ev PointerEvent, view Viewport, intrinsicW, intrinsicH float64) Point {
	cx, cy := ev.Client()
	sx, sy := 1.0, 1.0
	if view.Width > 0 {
		sx = intrinsicW / view.Width
	}
	if view.Height > 0 {
		sy = intrinsicH / view.Height
	}
	return Point{
		X: (cx - view.Left) * sx,
		Y: (cy - view.Top) * sy,
	}
}

// HitTest returns the first aircraft, in snapshot order, strictly within
// HitRadius of p.
func HitTest(aircraft []protocol.Aircraft, p Point) (protocol.Aircraft, bool) {
	for _, ac := range aircraft {
		if math.Hypot(ac.X-p.X, ac.Y-p.Y) < HitRadius {
			return ac, true
		}
	}
	return protocol.Aircraft{}, false
}
