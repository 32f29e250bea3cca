package game

import (
	"image"
	"image/color"

	"airspace/client/internal/radar"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// imageCanvas draws the radar onto an offscreen image sized to the
// simulation space; the game then stretches it into the viewport.
type imageCanvas struct {
	img *ebiten.Image

	vs []ebiten.Vertex
	is []uint16
}

func newImageCanvas(w, h int) *imageCanvas {
	return &imageCanvas{img: ebiten.NewImage(w, h)}
}

func (c *imageCanvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *imageCanvas) Clear(col color.Color) { c.img.Fill(col) }

func (c *imageCanvas) StrokeLine(x0, y0, x1, y1, width float64, col color.Color) {
	vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), col, true)
}

func (c *imageCanvas) StrokeCircle(cx, cy, r, width float64, col color.Color) {
	vector.StrokeCircle(c.img, float32(cx), float32(cy), float32(r), float32(width), col, true)
}

func (c *imageCanvas) FillPolygon(pts []radar.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	c.vs, c.is = path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	r, g, b, a := col.RGBA() // premultiplied
	for i := range c.vs {
		c.vs[i].SrcX, c.vs[i].SrcY = 1, 1
		c.vs[i].ColorR = float32(r) / 0xffff
		c.vs[i].ColorG = float32(g) / 0xffff
		c.vs[i].ColorB = float32(b) / 0xffff
		c.vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	c.img.DrawTriangles(c.vs, c.is, whiteSubImage, op)
}

// Glow is a soft disc: a wide faint one under a tighter brighter one.
func (c *imageCanvas) Glow(cx, cy, r float64, col color.Color) {
	outer := color.NRGBAModel.Convert(col).(color.NRGBA)
	inner := outer
	outer.A /= 2
	vector.DrawFilledCircle(c.img, float32(cx), float32(cy), float32(r), outer, true)
	vector.DrawFilledCircle(c.img, float32(cx), float32(cy), float32(r*0.6), inner, true)
}

// Text draws s with its baseline at y.
func (c *imageCanvas) Text(s string, x, y float64, col color.Color) {
	text.Draw(c.img, plain(s), basicfont.Face7x13, int(x), int(y), col)
}
