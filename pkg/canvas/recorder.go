package canvas

import (
	"encoding/json"
	"fmt"
)

// OpKind identifies a recorded drawing call.
type OpKind string

// Recorded operation kinds.
const (
	OpClear  OpKind = "clear"
	OpStroke OpKind = "stroke"
	OpFill   OpKind = "fill"
	OpText   OpKind = "text"
)

// Op is a single recorded drawing call. For text, Rect holds the baseline
// origin in X and Y.
type Op struct {
	Kind   OpKind
	Rect   Rect
	Stroke Stroke
	Paint  Paint
	Text   string
	Font   Font
	Color  Color
}

// Recorder is a Context that records calls instead of drawing them.
type Recorder struct {
	Ops []Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Rect: Rect{x, y, w, h}})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Rect: Rect{x, y, w, h}, Stroke: s})
}

func (r *Recorder) FillRect(x, y, w, h float64, p Paint) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Rect: Rect{x, y, w, h}, Paint: p})
}

func (r *Recorder) FillText(text string, x, y float64, f Font, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Rect: Rect{X: x, Y: y}, Text: text, Font: f, Color: c})
}

// Texts returns the strings drawn with FillText, in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

type stopJSON struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

type strokeJSON struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type paintJSON struct {
	Color string     `json:"color,omitempty"`
	Y0    *float64   `json:"y0,omitempty"`
	Y1    *float64   `json:"y1,omitempty"`
	Stops []stopJSON `json:"stops,omitempty"`
}

type opJSON struct {
	Kind   OpKind      `json:"kind"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	W      float64     `json:"w,omitempty"`
	H      float64     `json:"h,omitempty"`
	Stroke *strokeJSON `json:"stroke,omitempty"`
	Fill   *paintJSON  `json:"fill,omitempty"`
	Text   string      `json:"text,omitempty"`
	Font   string      `json:"font,omitempty"`
	Color  string      `json:"color,omitempty"`
}

// MarshalJSON encodes the op with colours as hex strings.
func (o Op) MarshalJSON() ([]byte, error) {
	out := opJSON{Kind: o.Kind, X: o.Rect.X, Y: o.Rect.Y, W: o.Rect.W, H: o.Rect.H}
	switch o.Kind {
	case OpStroke:
		out.Stroke = &strokeJSON{Color: o.Stroke.Color.Hex(), Width: o.Stroke.Width}
	case OpFill:
		out.Fill = encodePaint(o.Paint)
	case OpText:
		out.Text = o.Text
		out.Font = o.Font.String()
		out.Color = o.Color.Hex()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an op written by MarshalJSON.
func (o *Op) UnmarshalJSON(data []byte) error {
	var in opJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	op := Op{Kind: in.Kind, Rect: Rect{X: in.X, Y: in.Y, W: in.W, H: in.H}}
	switch in.Kind {
	case OpClear:
	case OpStroke:
		if in.Stroke == nil {
			return fmt.Errorf("canvas: stroke op without stroke")
		}
		c, err := Hex(in.Stroke.Color)
		if err != nil {
			return err
		}
		op.Stroke = Stroke{Color: c, Width: in.Stroke.Width}
	case OpFill:
		p, err := decodePaint(in.Fill)
		if err != nil {
			return err
		}
		op.Paint = p
	case OpText:
		f, err := ParseFont(in.Font)
		if err != nil {
			return err
		}
		c, err := Hex(in.Color)
		if err != nil {
			return err
		}
		op.Text, op.Font, op.Color = in.Text, f, c
	default:
		return fmt.Errorf("canvas: unknown op kind %q", in.Kind)
	}
	*o = op
	return nil
}

func encodePaint(p Paint) *paintJSON {
	switch p := p.(type) {
	case Solid:
		return &paintJSON{Color: p.Color.Hex()}
	case *LinearGradient:
		y0, y1 := p.Y0, p.Y1
		pj := &paintJSON{Y0: &y0, Y1: &y1}
		for _, s := range p.Stops {
			pj.Stops = append(pj.Stops, stopJSON{Offset: s.Offset, Color: s.Color.Hex()})
		}
		return pj
	}
	return nil
}

func decodePaint(pj *paintJSON) (Paint, error) {
	if pj == nil {
		return nil, fmt.Errorf("canvas: fill op without paint")
	}
	if pj.Y0 == nil || pj.Y1 == nil {
		c, err := Hex(pj.Color)
		if err != nil {
			return nil, err
		}
		return Solid{Color: c}, nil
	}
	g := NewLinearGradient(*pj.Y0, *pj.Y1)
	for _, s := range pj.Stops {
		c, err := Hex(s.Color)
		if err != nil {
			return nil, err
		}
		if err := g.AddStop(s.Offset, c); err != nil {
			return nil, err
		}
	}
	return g, nil
}
