// Package term implements canvas.Context as a grid of terminal cells.
//
// Each cell covers CellWidth x CellHeight scene units. Fills colour a cell's
// background when the cell centre lies inside the rectangle, sampling the
// paint at that centre; strokes draw box characters along the outline; text
// is written left to right on the row containing the glyph's mid-height.
// [Canvas.String] renders the grid with lipgloss styles.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/reactorsim/pkg/canvas"
)

// Default cell size in scene units. Terminal cells are roughly twice as tall
// as they are wide.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

type cell struct {
	ch     rune
	fg, bg *canvas.Color
}

// Canvas is a terminal cell grid.
type Canvas struct {
	cols, rows int
	cellW      float64
	cellH      float64
	cells      [][]cell
}

// New creates a grid covering width x height scene units using the default
// cell size.
func New(width, height float64) *Canvas {
	return NewWithCell(width, height, DefaultCellWidth, DefaultCellHeight)
}

// NewWithCell creates a grid with a custom cell size in scene units.
func NewWithCell(width, height, cellW, cellH float64) *Canvas {
	c := &Canvas{
		cols:  int(math.Ceil(width / cellW)),
		rows:  int(math.Ceil(height / cellH)),
		cellW: cellW,
		cellH: cellH,
	}
	c.cells = make([][]cell, c.rows)
	for r := range c.cells {
		c.cells[r] = make([]cell, c.cols)
	}
	return c
}

// Size returns the grid dimensions in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) ClearRect(x, y, w, h float64) {
	c.each(canvas.Rect{X: x, Y: y, W: w, H: h}, func(cl *cell, _ float64) {
		*cl = cell{}
	})
}

func (c *Canvas) StrokeRect(x, y, w, h float64, s canvas.Stroke) {
	col := s.Color
	left, top := c.col(x), c.row(y)
	right, bottom := c.col(x+w), c.row(y+h)
	right = min(right, c.cols-1)
	bottom = min(bottom, c.rows-1)
	for r := max(top, 0); r <= bottom; r++ {
		for k := max(left, 0); k <= right; k++ {
			if r != top && r != bottom && k != left && k != right {
				continue
			}
			cl := &c.cells[r][k]
			cl.ch = boxRune(r == top, r == bottom, k == left, k == right)
			cl.fg = &col
		}
	}
}

func (c *Canvas) FillRect(x, y, w, h float64, p canvas.Paint) {
	c.each(canvas.Rect{X: x, Y: y, W: w, H: h}, func(cl *cell, cy float64) {
		bg := p.ColorAt(cy)
		cl.bg = &bg
	})
}

func (c *Canvas) FillText(text string, x, y float64, f canvas.Font, col canvas.Color) {
	r := c.row(y - f.Size/2)
	if r < 0 || r >= c.rows {
		return
	}
	k := c.col(x)
	for _, ch := range text {
		if k >= c.cols {
			break
		}
		if k >= 0 {
			fg := col
			c.cells[r][k].ch = ch
			c.cells[r][k].fg = &fg
		}
		k++
	}
}

// String renders the grid, one line per row, with ANSI colours.
func (c *Canvas) String() string {
	var b strings.Builder
	for r, row := range c.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range row {
			ch := cl.ch
			if ch == 0 {
				ch = ' '
			}
			style := lipgloss.NewStyle()
			if cl.fg != nil {
				style = style.Foreground(lipgloss.Color(cl.fg.Hex()))
			}
			if cl.bg != nil {
				style = style.Background(lipgloss.Color(cl.bg.Hex()))
			}
			b.WriteString(style.Render(string(ch)))
		}
	}
	return b.String()
}

// Plain renders the grid without colours, which is handy in logs and tests.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for r, row := range c.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cl := range row {
			if cl.ch == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(cl.ch)
		}
	}
	return b.String()
}

// Background returns the background colour of a cell, if any.
func (c *Canvas) Background(col, row int) (canvas.Color, bool) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return canvas.Color{}, false
	}
	bg := c.cells[row][col].bg
	if bg == nil {
		return canvas.Color{}, false
	}
	return *bg, true
}

// each calls fn for every cell whose centre lies inside rect, passing the
// centre's y coordinate in scene units.
func (c *Canvas) each(rect canvas.Rect, fn func(*cell, float64)) {
	for r := range c.cells {
		cy := (float64(r) + 0.5) * c.cellH
		for k := range c.cells[r] {
			cx := (float64(k) + 0.5) * c.cellW
			if rect.ContainsPoint(cx, cy) {
				fn(&c.cells[r][k], cy)
			}
		}
	}
}

func (c *Canvas) col(x float64) int { return int(math.Floor(x / c.cellW)) }
func (c *Canvas) row(y float64) int { return int(math.Floor(y / c.cellH)) }

func boxRune(top, bottom, left, right bool) rune {
	switch {
	case top && left:
		return '┌'
	case top && right:
		return '┐'
	case bottom && left:
		return '└'
	case bottom && right:
		return '┘'
	case top || bottom:
		return '─'
	default:
		return '│'
	}
}
