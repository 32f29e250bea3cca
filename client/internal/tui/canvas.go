package tui

import (
	"image/color"
	"math"

	"airspace/client/internal/radar"

	"github.com/gdamore/tcell/v2"
)

// Cell priorities. A write only lands on a cell holding a lower or equal one.
const (
	prioEmpty = iota
	prioFaint // grid, conflict rings, velocity vectors, outlines
	prioLine
	prioBody
	prioText
)

// Strokes below this alpha are drawn as dim dots under everything else.
const faintAlpha = 0xa0

type cell struct {
	r      rune
	fg, bg color.NRGBA
	prio   int
}

// cellCanvas rasterizes simulation-space drawing onto a grid of terminal
// cells. Terminal cells are roughly twice as tall as wide, so the x and y
// scales differ.
type cellCanvas struct {
	simW, simH float64
	cols, rows int
	bg         color.NRGBA
	cells      []cell
}

func newCellCanvas(simW, simH float64, cols, rows int) *cellCanvas {
	c := &cellCanvas{simW: simW, simH: simH}
	c.resize(cols, rows)
	return c
}

func (c *cellCanvas) resize(cols, rows int) {
	c.cols, c.rows = max(cols, 1), max(rows, 1)
	c.cells = make([]cell, c.cols*c.rows)
}

func (c *cellCanvas) Size() (float64, float64) { return c.simW, c.simH }

// toCell maps simulation coordinates to a cell column and row.
func (c *cellCanvas) toCell(x, y float64) (int, int) {
	return int(math.Floor(x * float64(c.cols) / c.simW)), int(math.Floor(y * float64(c.rows) / c.simH))
}

func (c *cellCanvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

func (c *cellCanvas) put(col, row int, r rune, fg color.NRGBA, prio int) {
	cl := c.at(col, row)
	if cl == nil || cl.prio > prio {
		return
	}
	cl.r, cl.fg, cl.prio = r, fg, prio
}

// flatten blends a translucent color over the background; terminals have
// no alpha.
func (c *cellCanvas) flatten(col color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	if n.A == 0xff {
		return n
	}
	a := float64(n.A) / 0xff
	mix := func(fg, bg uint8) uint8 { return uint8(float64(bg) + (float64(fg)-float64(bg))*a) }
	return color.NRGBA{mix(n.R, c.bg.R), mix(n.G, c.bg.G), mix(n.B, c.bg.B), 0xff}
}

func alpha(col color.Color) uint8 {
	return color.NRGBAModel.Convert(col).(color.NRGBA).A
}

func (c *cellCanvas) Clear(col color.Color) {
	c.bg = color.NRGBAModel.Convert(col).(color.NRGBA)
	c.bg.A = 0xff
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', fg: c.bg, bg: c.bg}
	}
}

func lineRune(dx, dy int) rune {
	switch {
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

func (c *cellCanvas) StrokeLine(x0, y0, x1, y1, _ float64, col color.Color) {
	c0, r0 := c.toCell(x0, y0)
	c1, r1 := c.toCell(x1, y1)
	fg := c.flatten(col)
	r, prio := lineRune(c1-c0, r1-r0), prioLine
	if alpha(col) < faintAlpha {
		r, prio = '·', prioFaint
	}

	// Bresenham
	dx, dy := abs(c1-c0), -abs(r1-r0)
	sx, sy := sign(c1-c0), sign(r1-r0)
	e := dx + dy
	for {
		c.put(c0, r0, r, fg, prio)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			c0 += sx
		}
		if e2 <= dx {
			e += dx
			r0 += sy
		}
	}
}

func (c *cellCanvas) StrokeCircle(cx, cy, radius, _ float64, col color.Color) {
	fg := c.flatten(col)
	prio, r := prioLine, 'o'
	if alpha(col) < faintAlpha {
		prio, r = prioFaint, '·'
	}
	// One sample per cell of circumference is enough at terminal resolution.
	n := max(16, int(2*math.Pi*radius*float64(c.cols)/c.simW)*2)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		cl, row := c.toCell(cx+radius*math.Cos(a), cy+radius*math.Sin(a))
		c.put(cl, row, r, fg, prio)
	}
}

// FillPolygon fills every cell whose center is inside pts. A polygon too
// small to cover a cell center still marks the cell under its centroid.
func (c *cellCanvas) FillPolygon(pts []radar.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	fg := c.flatten(col)
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	var sx, sy float64
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		sx += p.X
		sy += p.Y
	}
	cw, ch := c.simW/float64(c.cols), c.simH/float64(c.rows)
	c0, r0 := c.toCell(minX, minY)
	c1, r1 := c.toCell(maxX, maxY)
	hit := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			center := radar.Point{X: (float64(col) + 0.5) * cw, Y: (float64(row) + 0.5) * ch}
			if inside(pts, center) {
				c.put(col, row, '█', fg, prioBody)
				hit = true
			}
		}
	}
	if !hit {
		col, row := c.toCell(sx/float64(len(pts)), sy/float64(len(pts)))
		c.put(col, row, '▪', fg, prioBody)
	}
}

// Glow tints the background of the cells around (cx, cy).
func (c *cellCanvas) Glow(cx, cy, radius float64, col color.Color) {
	tint := c.flatten(col)
	c0, r0 := c.toCell(cx-radius, cy-radius)
	c1, r1 := c.toCell(cx+radius, cy+radius)
	for row := r0; row <= r1; row++ {
		for cl := c0; cl <= c1; cl++ {
			if p := c.at(cl, row); p != nil {
				p.bg = tint
			}
		}
	}
}

// Text writes s left to right starting at the cell holding (x, y).
func (c *cellCanvas) Text(s string, x, y float64, col color.Color) {
	fg := c.flatten(col)
	cl, row := c.toCell(x, y)
	for _, r := range s {
		c.put(cl, row, r, fg, prioText)
		cl++
	}
}

func (c *cellCanvas) runeAt(col, row int) rune {
	if p := c.at(col, row); p != nil {
		return p.r
	}
	return 0
}

func style(fg, bg color.NRGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
}

// blit copies the grid to the screen with its top-left cell at (x, y).
func (c *cellCanvas) blit(s tcell.Screen, x, y int) {
	for row := range c.rows {
		for col := range c.cols {
			p := c.cells[row*c.cols+col]
			s.SetContent(x+col, y+row, p.r, nil, style(p.fg, p.bg))
		}
	}
}

// inside is an even-odd point-in-polygon test.
func inside(pts []radar.Point, p radar.Point) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
