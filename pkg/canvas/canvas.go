package canvas

// Context is a 2D drawing surface. Coordinates are in scene units with the
// origin at the top-left corner and y growing downwards.
type Context interface {
	// ClearRect resets the given region to transparent.
	ClearRect(x, y, w, h float64)
	// StrokeRect outlines the given rectangle.
	StrokeRect(x, y, w, h float64, s Stroke)
	// FillRect fills the given rectangle with p.
	FillRect(x, y, w, h float64, p Paint)
	// FillText draws text with its baseline starting at (x, y).
	FillText(text string, x, y float64, f Font, c Color)
}

// Stroke configures rectangle outlines.
type Stroke struct {
	Color Color
	Width float64
}

// Rect is an axis-aligned rectangle in scene units.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether r lies entirely inside o.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// ContainsPoint reports whether (x, y) lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) ContainsPoint(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
