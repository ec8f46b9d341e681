package reactor

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/reactorsim/pkg/canvas"
)

func record(progress float64) *canvas.Recorder {
	rec := canvas.NewRecorder()
	Draw(rec, Compute(progress))
	return rec
}

func fills(rec *canvas.Recorder) []canvas.Op {
	var out []canvas.Op
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpFill {
			out = append(out, op)
		}
	}
	return out
}

func TestDrawStartsWithClearAndVessel(t *testing.T) {
	rec := record(10)
	if len(rec.Ops) < 2 {
		t.Fatalf("too few ops: %d", len(rec.Ops))
	}
	if rec.Ops[0].Kind != canvas.OpClear || rec.Ops[0].Rect != (canvas.Rect{W: SceneWidth, H: SceneHeight}) {
		t.Errorf("first op = %+v, want full clear", rec.Ops[0])
	}
	stroke := rec.Ops[1]
	if stroke.Kind != canvas.OpStroke || stroke.Rect != (canvas.Rect{X: 100, Y: 30, W: 200, H: 240}) {
		t.Errorf("second op = %+v, want vessel outline", stroke)
	}
	if stroke.Stroke.Width != 3 || stroke.Stroke.Color.Hex() != "#333333" {
		t.Errorf("vessel stroke = %+v", stroke.Stroke)
	}
}

func TestDrawLabelsByPhase(t *testing.T) {
	tests := []struct {
		progress float64
		want     []string
	}{
		{0, []string{LabelMixture}},
		{29.9, []string{LabelMixture}},
		{30, []string{LabelMixture}},
		{69.9, []string{LabelMixture}},
		{70, []string{LabelBiodiesel, LabelGlycerin}},
		{100, []string{LabelBiodiesel, LabelGlycerin}},
	}
	for _, tt := range tests {
		if got := record(tt.progress).Texts(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("progress %v: texts = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestDrawMixingGradient(t *testing.T) {
	f := fills(record(10))
	if len(f) != 1 {
		t.Fatalf("mixing fills = %d, want 1", len(f))
	}
	g, ok := f[0].Paint.(*canvas.LinearGradient)
	if !ok {
		t.Fatalf("mixing paint = %T, want gradient", f[0].Paint)
	}
	if g.Y0 != 30 || g.Y1 != 270 || len(g.Stops) != 2 {
		t.Errorf("mixing gradient = %+v", g)
	}
	if g.Stops[0].Color.Hex() != "#f7e48d" || g.Stops[1].Color.Hex() != "#c5b580" {
		t.Errorf("mixing colours = %s, %s", g.Stops[0].Color.Hex(), g.Stops[1].Color.Hex())
	}
}

func TestDrawIntermediateGradient(t *testing.T) {
	tests := []struct {
		progress float64
		wantMid  float64
	}{
		{30, 0},
		{50, 0.5},
		{60, 0.75},
	}
	for _, tt := range tests {
		f := fills(record(tt.progress))
		if len(f) != 1 {
			t.Fatalf("progress %v: fills = %d, want 1", tt.progress, len(f))
		}
		g := f[0].Paint.(*canvas.LinearGradient)
		if len(g.Stops) != 3 {
			t.Fatalf("progress %v: stops = %d, want 3", tt.progress, len(g.Stops))
		}
		if g.Stops[1].Offset != tt.wantMid {
			t.Errorf("progress %v: middle stop = %v, want %v", tt.progress, g.Stops[1].Offset, tt.wantMid)
		}
		if g.Stops[2].Color.Hex() != "#9a754c" {
			t.Errorf("progress %v: last colour = %s", tt.progress, g.Stops[2].Color.Hex())
		}
	}
}

func TestDrawIntermediateNearBoundaryKeepsAllStops(t *testing.T) {
	f := fills(record(69.99))
	g := f[0].Paint.(*canvas.LinearGradient)
	if len(g.Stops) != 3 {
		t.Fatalf("stops = %d, want 3 (a stop was rejected)", len(g.Stops))
	}
	if g.Stops[1].Offset > 1 {
		t.Errorf("middle stop = %v, want <= 1", g.Stops[1].Offset)
	}
}

func TestDrawSeparatedLayers(t *testing.T) {
	f := fills(record(100))
	if len(f) != 3 {
		t.Fatalf("separated fills = %d, want 3", len(f))
	}

	top, band, bottom := f[0], f[1], f[2]
	if top.Rect != (canvas.Rect{X: 100, Y: 30, W: 200, H: 129}) {
		t.Errorf("biodiesel band = %+v", top.Rect)
	}
	if top.Paint.ColorAt(0).Hex() != "#f7e48d" {
		t.Errorf("biodiesel colour = %s", top.Paint.ColorAt(0).Hex())
	}
	if band.Rect != (canvas.Rect{X: 100, Y: 159, W: 200, H: 30}) {
		t.Errorf("transition band = %+v", band.Rect)
	}
	g := band.Paint.(*canvas.LinearGradient)
	if g.Y0 != 159 || g.Y1 != 189 || g.Stops[1].Color.Hex() != "#b07a3a" {
		t.Errorf("transition gradient = %+v", g)
	}
	if bottom.Rect != (canvas.Rect{X: 100, Y: 189, W: 200, H: 81}) {
		t.Errorf("glycerin band = %+v", bottom.Rect)
	}
	if bottom.Paint.ColorAt(0).Hex() != "#8b5a2b" {
		t.Errorf("glycerin colour = %s", bottom.Paint.ColorAt(0).Hex())
	}
}

func TestDrawSeparatedLabelPositions(t *testing.T) {
	rec := record(100)
	var pos []canvas.Rect
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpText {
			pos = append(pos, op.Rect)
		}
	}
	want := []canvas.Rect{{X: 160, Y: 50 + 144.0/2}, {X: 160, Y: 30 + 144 + 96.0/2}}
	if !reflect.DeepEqual(pos, want) {
		t.Errorf("label positions = %v, want %v", pos, want)
	}
}

func TestDrawDeterministic(t *testing.T) {
	for _, p := range []float64{0, 29.9, 30, 45, 69.9, 70, 88.8, 100} {
		a, err := json.Marshal(record(p).Ops)
		if err != nil {
			t.Fatal(err)
		}
		b, _ := json.Marshal(record(p).Ops)
		if string(a) != string(b) {
			t.Errorf("progress %v: drawing differs between runs", p)
		}
	}
}

func TestRendererUpdatesDisplay(t *testing.T) {
	rec := canvas.NewRecorder()
	var out TextDisplay
	r := NewRenderer(rec, &out)

	f := r.Render(50)
	if out.Status != PhaseIntermediate.Status() {
		t.Errorf("status = %q", out.Status)
	}
	if out.Report != f.Report || out.Report != Compute(50).Report {
		t.Errorf("report = %q", out.Report)
	}
	if len(rec.Ops) == 0 {
		t.Error("renderer should draw")
	}

	first := out
	r.Render(50)
	if out != first {
		t.Errorf("second render changed text: %+v vs %+v", out, first)
	}
}

func TestRendererNilDisplay(t *testing.T) {
	r := NewRenderer(canvas.NewRecorder(), nil)
	if f := r.Render(75); f.Phase != PhaseSeparated {
		t.Errorf("phase = %v", f.Phase)
	}
}

func TestGradientPanicsOnInvalidStop(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("gradient with an out-of-range stop should panic")
		}
	}()
	gradient(VesselY, VesselY+VesselHeight,
		canvas.Stop{Offset: 0, Color: colorLight},
		canvas.Stop{Offset: 1.5, Color: colorGlycerin})
}

func TestGradientKeepsAllStops(t *testing.T) {
	for _, p := range []float64{30, 50, 69.99} {
		g := gradient(VesselY, VesselY+VesselHeight,
			canvas.Stop{Offset: 0, Color: colorLight},
			canvas.Stop{Offset: MixStop(p), Color: colorIntermediate},
			canvas.Stop{Offset: 1, Color: colorSettling})
		if len(g.Stops) != 3 {
			t.Errorf("gradient at %v has %d stops, want 3", p, len(g.Stops))
		}
	}
}
