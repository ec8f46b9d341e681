package canvas

import (
	"errors"
	"math"
)

// ErrStopOffset is returned when a gradient stop offset is outside [0, 1].
var ErrStopOffset = errors.New("canvas: gradient stop offset must be within [0, 1]")

// Paint is a fill style.
type Paint interface {
	// ColorAt returns the paint's colour at vertical position y.
	ColorAt(y float64) Color
}

// Solid is a single-colour fill.
type Solid struct {
	Color Color
}

// ColorAt returns the solid colour regardless of y.
func (s Solid) ColorAt(float64) Color { return s.Color }

// Stop is a gradient colour stop.
type Stop struct {
	Offset float64
	Color  Color
}

// LinearGradient is a vertical gradient running from Y0 (offset 0) to Y1
// (offset 1). Stops are kept in insertion order.
type LinearGradient struct {
	Y0, Y1 float64
	Stops  []Stop
}

// NewLinearGradient creates an empty vertical gradient between y0 and y1.
func NewLinearGradient(y0, y1 float64) *LinearGradient {
	return &LinearGradient{Y0: y0, Y1: y1}
}

// AddStop appends a colour stop. Offsets outside [0, 1] (or NaN) are rejected
// and leave the gradient unchanged.
func (g *LinearGradient) AddStop(offset float64, c Color) error {
	if math.IsNaN(offset) || offset < 0 || offset > 1 {
		return ErrStopOffset
	}
	g.Stops = append(g.Stops, Stop{Offset: offset, Color: c})
	return nil
}

// ColorAt samples the gradient at y. Positions before the first stop take the
// first stop's colour, positions after the last take the last one's. When
// several stops share an offset the later one wins past that point.
func (g *LinearGradient) ColorAt(y float64) Color {
	if len(g.Stops) == 0 {
		return Color{}
	}
	t := 0.0
	if span := g.Y1 - g.Y0; span != 0 {
		t = (y - g.Y0) / span
	}
	t = math.Max(0, math.Min(1, t))

	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		if b.Offset == a.Offset {
			return b.Color
		}
		return a.Color.BlendRgb(b.Color, (t-a.Offset)/(b.Offset-a.Offset)).Clamped()
	}
	return last.Color
}
