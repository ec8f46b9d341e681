package reactor

import (
	"fmt"

	"github.com/matzehuels/reactorsim/pkg/canvas"
)

// Scene and vessel geometry in scene units.
const (
	SceneWidth  = 400.0
	SceneHeight = 300.0

	VesselX      = 100.0
	VesselY      = 30.0
	VesselWidth  = 200.0
	VesselHeight = 240.0

	// TransitionBand is the height of the gradient band drawn across the
	// biodiesel/glycerin boundary once the layers have separated.
	TransitionBand = 30.0
)

// Palette.
var (
	colorVessel       = canvas.MustHex("#333")
	colorLabel        = canvas.MustHex("#222")
	colorLight        = canvas.MustHex("#f7e48d") // fresh mixture, and biodiesel
	colorMixDark      = canvas.MustHex("#c5b580")
	colorIntermediate = canvas.MustHex("#c49b66")
	colorSettling     = canvas.MustHex("#9a754c")
	colorBoundary     = canvas.MustHex("#b07a3a")
	colorGlycerin     = canvas.MustHex("#8b5a2b")

	labelFont    = canvas.MustParseFont("14px Arial")
	vesselStroke = canvas.Stroke{Color: colorVessel, Width: 3}
)

// Labels drawn inside the vessel.
const (
	LabelMixture   = "Mezcla reaccionando..."
	LabelBiodiesel = "Biodiésel"
	LabelGlycerin  = "Glicerina"
)

// Draw paints f onto c: the vessel outline, the phase-dependent fill and the
// labels. It only reads f.
func Draw(c canvas.Context, f Frame) {
	c.ClearRect(0, 0, SceneWidth, SceneHeight)
	c.StrokeRect(VesselX, VesselY, VesselWidth, VesselHeight, vesselStroke)

	switch f.Phase {
	case PhaseMixing:
		c.FillRect(VesselX, VesselY, VesselWidth, VesselHeight,
			gradient(VesselY, VesselY+VesselHeight,
				canvas.Stop{Offset: 0, Color: colorLight},
				canvas.Stop{Offset: 1, Color: colorMixDark}))
	case PhaseIntermediate:
		c.FillRect(VesselX, VesselY, VesselWidth, VesselHeight,
			gradient(VesselY, VesselY+VesselHeight,
				canvas.Stop{Offset: 0, Color: colorLight},
				canvas.Stop{Offset: f.MixStop, Color: colorIntermediate},
				canvas.Stop{Offset: 1, Color: colorSettling}))
	default:
		drawLayers(c, f.Layers)
	}

	if f.Phase == PhaseSeparated {
		c.FillText(LabelBiodiesel, 160, 50+f.Layers.Biodiesel/2, labelFont, colorLabel)
		c.FillText(LabelGlycerin, 160, VesselY+f.Layers.Biodiesel+f.Layers.Glycerin/2, labelFont, colorLabel)
	} else {
		c.FillText(LabelMixture, 130, 160, labelFont, colorLabel)
	}
}

func drawLayers(c canvas.Context, l Layers) {
	half := TransitionBand / 2
	y := l.Boundary()

	c.FillRect(VesselX, VesselY, VesselWidth, l.Biodiesel-half, canvas.Solid{Color: colorLight})
	c.FillRect(VesselX, y-half, VesselWidth, TransitionBand,
		gradient(y-half, y+half,
			canvas.Stop{Offset: 0, Color: colorLight},
			canvas.Stop{Offset: 0.5, Color: colorBoundary},
			canvas.Stop{Offset: 1, Color: colorGlycerin}))
	c.FillRect(VesselX, y+half, VesselWidth, l.Glycerin-half, canvas.Solid{Color: colorGlycerin})
}

// gradient builds a vertical gradient. Offsets are derived from clamped
// progress, so a rejected stop is a bug and panics.
func gradient(y0, y1 float64, stops ...canvas.Stop) *canvas.LinearGradient {
	g := canvas.NewLinearGradient(y0, y1)
	for _, s := range stops {
		if err := g.AddStop(s.Offset, s.Color); err != nil {
			panic(fmt.Sprintf("reactor: gradient stop %v: %v", s.Offset, err))
		}
	}
	return g
}

// Display receives the two text outputs of a render.
type Display interface {
	SetStatus(status string)
	SetReport(report string)
}

// Renderer paints frames onto a surface and publishes their text.
type Renderer struct {
	surface canvas.Context
	display Display
}

// NewRenderer creates a renderer. display may be nil.
func NewRenderer(surface canvas.Context, display Display) *Renderer {
	return &Renderer{surface: surface, display: display}
}

// Render computes the frame for progress, draws it and updates the display.
func (r *Renderer) Render(progress float64) Frame {
	f := Compute(progress)
	Draw(r.surface, f)
	if r.display != nil {
		r.display.SetStatus(f.Status)
		r.display.SetReport(f.Report)
	}
	return f
}

// TextDisplay is a Display that keeps the latest text in memory.
type TextDisplay struct {
	Status string
	Report string
}

func (d *TextDisplay) SetStatus(s string) { d.Status = s }
func (d *TextDisplay) SetReport(s string) { d.Report = s }
