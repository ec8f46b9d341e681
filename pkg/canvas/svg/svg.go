// Package svg implements canvas.Context as an SVG document builder.
//
// Drawing calls are appended as SVG elements in call order; gradients become
// <linearGradient> definitions in user space so their coordinates match the
// scene exactly:
//
//	c := svg.New(400, 300)
//	reactor.Draw(c, reactor.Compute(50))
//	os.WriteFile("scene.svg", c.Bytes(), 0o644)
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/reactorsim/pkg/canvas"
)

// Canvas accumulates drawing calls as SVG elements.
type Canvas struct {
	width, height float64
	elements      []element
	defs          bytes.Buffer
	gradients     int
}

type element struct {
	bounds canvas.Rect
	markup string
}

// New creates an empty SVG canvas with the given viewport size.
func New(width, height float64) *Canvas {
	return &Canvas{width: width, height: height}
}

// ClearRect removes every element lying entirely within the region. Clearing
// the whole viewport resets the document, including gradient definitions.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	region := canvas.Rect{X: x, Y: y, W: w, H: h}
	if region.Contains(canvas.Rect{W: c.width, H: c.height}) {
		c.elements = c.elements[:0]
		c.defs.Reset()
		c.gradients = 0
		return
	}
	kept := c.elements[:0]
	for _, e := range c.elements {
		if !region.Contains(e.bounds) {
			kept = append(kept, e)
		}
	}
	c.elements = kept
}

func (c *Canvas) StrokeRect(x, y, w, h float64, s canvas.Stroke) {
	c.add(canvas.Rect{X: x, Y: y, W: w, H: h}, fmt.Sprintf(
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`,
		x, y, w, h, s.Color.Hex(), s.Width))
}

func (c *Canvas) FillRect(x, y, w, h float64, p canvas.Paint) {
	if w <= 0 || h <= 0 {
		return
	}
	c.add(canvas.Rect{X: x, Y: y, W: w, H: h}, fmt.Sprintf(
		`  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`,
		x, y, w, h, c.fill(p)))
}

func (c *Canvas) FillText(text string, x, y float64, f canvas.Font, col canvas.Color) {
	c.add(canvas.Rect{X: x, Y: y - f.Size, H: f.Size}, fmt.Sprintf(
		`  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" fill="%s">%s</text>`,
		x, y, escape(f.Family), f.Size, col.Hex(), escape(text)))
}

// Bytes returns the complete SVG document.
func (c *Canvas) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.width, c.height, c.width, c.height)
	if c.defs.Len() > 0 {
		buf.WriteString("  <defs>\n")
		buf.Write(c.defs.Bytes())
		buf.WriteString("  </defs>\n")
	}
	for _, e := range c.elements {
		buf.WriteString(e.markup)
		buf.WriteByte('\n')
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (c *Canvas) add(bounds canvas.Rect, markup string) {
	c.elements = append(c.elements, element{bounds: bounds, markup: markup})
}

// fill returns the SVG fill attribute value for p, registering a gradient
// definition when needed.
func (c *Canvas) fill(p canvas.Paint) string {
	g, ok := p.(*canvas.LinearGradient)
	if !ok {
		return p.ColorAt(0).Hex()
	}
	c.gradients++
	id := fmt.Sprintf("grad-%d", c.gradients)
	fmt.Fprintf(&c.defs, `    <linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="0" y1="%.2f" x2="0" y2="%.2f">`+"\n",
		id, g.Y0, g.Y1)
	for _, s := range g.Stops {
		fmt.Fprintf(&c.defs, `      <stop offset="%.4f" stop-color="%s"/>`+"\n", s.Offset, s.Color.Hex())
	}
	c.defs.WriteString("    </linearGradient>\n")
	return "url(#" + id + ")"
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
