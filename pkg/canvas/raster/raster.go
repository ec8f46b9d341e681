// Package raster implements canvas.Context on top of fogleman/gg and encodes
// the result as PNG.
//
// The canvas is created in scene units and scaled to pixels, so a 400x300
// scene at scale 2 produces an 800x600 image:
//
//	c := raster.New(400, 300, 2)
//	reactor.Draw(c, reactor.Compute(75))
//	err := c.EncodePNG(w)
package raster

import (
	"image"
	"image/draw"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/reactorsim/pkg/canvas"
)

// Canvas draws onto an in-memory RGBA image.
type Canvas struct {
	dc    *gg.Context
	scale float64
	faces map[float64]font.Face
}

// New creates a transparent canvas of width x height scene units rendered at
// the given scale. Non-positive scales fall back to 1.
func New(width, height, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(math.Ceil(width*scale)), int(math.Ceil(height*scale)))
	dc.Scale(scale, scale)
	return &Canvas{dc: dc, scale: scale, faces: make(map[float64]font.Face)}
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	dst, ok := c.dc.Image().(draw.Image)
	if !ok {
		return
	}
	r := image.Rect(
		int(math.Floor(x*c.scale)), int(math.Floor(y*c.scale)),
		int(math.Ceil((x+w)*c.scale)), int(math.Ceil((y+h)*c.scale)),
	)
	draw.Draw(dst, r, image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) StrokeRect(x, y, w, h float64, s canvas.Stroke) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetColor(s.Color)
	c.dc.SetLineWidth(s.Width * c.scale)
	c.dc.Stroke()
}

func (c *Canvas) FillRect(x, y, w, h float64, p canvas.Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.SetFillStyle(c.pattern(p))
	c.dc.Fill()
}

func (c *Canvas) FillText(text string, x, y float64, f canvas.Font, col canvas.Color) {
	c.dc.SetFontFace(c.face(f.Size))
	c.dc.SetColor(col)
	c.dc.DrawString(text, x, y)
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the rendered image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// pattern converts a canvas paint into a gg pattern. gg evaluates gradient
// coordinates in device space, so gradient endpoints are scaled here.
func (c *Canvas) pattern(p canvas.Paint) gg.Pattern {
	g, ok := p.(*canvas.LinearGradient)
	if !ok {
		return gg.NewSolidPattern(p.ColorAt(0))
	}
	grad := gg.NewLinearGradient(0, g.Y0*c.scale, 0, g.Y1*c.scale)
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
	return grad
}

var (
	regular     *truetype.Font
	regularOnce sync.Once
)

// face returns a Go Regular face at the given size in scene units. The gg
// transform scales glyphs along with everything else. Faces keep a glyph
// cache and are not safe for concurrent use, so each canvas owns its own.
func (c *Canvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	regularOnce.Do(func() {
		regular, _ = truetype.Parse(goregular.TTF)
	})
	f := truetype.NewFace(regular, &truetype.Options{Size: size})
	c.faces[size] = f
	return f
}
