package radar

import (
	"image/color"
	"math"

	"airspace/shared/protocol"
)

// Canvas is the drawing surface the renderer targets, in simulation units.
// The ebiten and terminal frontends each provide one.
type Canvas interface {
	Size() (w, h float64)
	Clear(c color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
	StrokeCircle(cx, cy, r, width float64, c color.Color)
	FillPolygon(pts []Point, c color.Color)
	Glow(cx, cy, r float64, c color.Color)
	Text(s string, x, y float64, c color.Color)
}

const (
	GridSpacing    = 50.0
	ConflictRadius = 50.0
	VelocityScale  = 10.0
	GlowRadius     = 16.0

	labelDX = 16.0
	labelDY = -6.0
)

var (
	ColorBackground   = color.NRGBA{0x0a, 0x16, 0x28, 0xff}
	ColorGrid         = color.NRGBA{74, 144, 226, 38}
	ColorConflictZone = color.NRGBA{255, 0, 0, 64}
	ColorFlagged      = color.NRGBA{0xff, 0xd7, 0x00, 0xff}
	ColorConflict     = color.NRGBA{0xff, 0x44, 0x44, 0xff}
	ColorNominal      = color.NRGBA{0x4c, 0xaf, 0x50, 0xff}
	ColorLabel        = color.NRGBA{0xcc, 0xcc, 0xcc, 0xff}
	ColorOutline      = color.NRGBA{255, 255, 255, 153}
	ColorGlow         = color.NRGBA{0xff, 0xd7, 0x00, 0x60}

	colorVectorConflict = color.NRGBA{255, 68, 68, 102}
	colorVectorNominal  = color.NRGBA{76, 175, 80, 102}
)

// Glyph space: nose towards -Y, unrotated. The fuselage comes first and is
// also outlined.
var airplaneParts = [][]Point{
	{{0, -14}, {1.5, -6}, {2, 8}, {0, 12}, {-2, 8}, {-1.5, -6}}, // fuselage
	{{-1, -2}, {-14, 4}, {-13, 6}, {-1, 2}},                     // left wing
	{{1, -2}, {14, 4}, {13, 6}, {1, 2}},                         // right wing
	{{-1, 8}, {-6, 12}, {-5, 13}, {-1, 10}},                     // left tail
	{{1, 8}, {6, 12}, {5, 13}, {1, 10}},                         // right tail
}

// Render draws the session onto c. It only reads the session and copes with
// empty snapshots.
func Render(c Canvas, s *Session) {
	w, h := c.Size()
	c.Clear(ColorBackground)
	drawGrid(c, w, h)

	// Conflict zones: a ring on the first aircraft, not the true midpoint.
	for _, cf := range s.Conflicts {
		if cf.Resolved {
			continue
		}
		p := s.Position(cf.Aircraft1)
		c.StrokeCircle(p.X, p.Y, ConflictRadius, 2, ColorConflictZone)
	}

	for _, ac := range s.Aircraft {
		drawAircraft(c, ac, s.Flagged[ac.ID], s.InConflict(ac.ID))
	}
}

func drawGrid(c Canvas, w, h float64) {
	for x := 0.0; x < w; x += GridSpacing {
		c.StrokeLine(x, 0, x, h, 1, ColorGrid)
	}
	for y := 0.0; y < h; y += GridSpacing {
		c.StrokeLine(0, y, w, y, 1, ColorGrid)
	}
}

// AircraftColor picks the glyph color: flagged beats in-conflict beats nominal.
func AircraftColor(flagged, inConflict bool) color.NRGBA {
	switch {
	case flagged:
		return ColorFlagged
	case inConflict:
		return ColorConflict
	default:
		return ColorNominal
	}
}

func drawAircraft(c Canvas, ac protocol.Aircraft, flagged, inConflict bool) {
	if flagged {
		c.Glow(ac.X, ac.Y, GlowRadius, ColorGlow)
	}

	col := AircraftColor(flagged, inConflict)
	parts := Glyph(ac.X, ac.Y, ac.Heading)
	for _, part := range parts {
		c.FillPolygon(part, col)
	}
	fuselage := parts[0]
	for i := range fuselage {
		a, b := fuselage[i], fuselage[(i+1)%len(fuselage)]
		c.StrokeLine(a.X, a.Y, b.X, b.Y, 0.5, ColorOutline)
	}

	label := ColorLabel
	vec := colorVectorNominal
	if inConflict {
		label = ColorConflict
		vec = colorVectorConflict
	}
	c.Text(ac.CallSign, ac.X+labelDX, ac.Y+labelDY, label)
	c.StrokeLine(ac.X, ac.Y, ac.X+ac.VelocityX*VelocityScale, ac.Y+ac.VelocityY*VelocityScale, 1, vec)
}

// Glyph returns the airplane polygons rotated by heading+90° (heading 0
// points along +X, the glyph nose along -Y) and moved to (x, y).
func Glyph(x, y, heading float64) [][]Point {
	rad := (heading + 90) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	out := make([][]Point, len(airplaneParts))
	for i, part := range airplaneParts {
		pts := make([]Point, len(part))
		for j, p := range part {
			pts[j] = Point{
				X: x + p.X*cos - p.Y*sin,
				Y: y + p.X*sin + p.Y*cos,
			}
		}
		out[i] = pts
	}
	return out
}
