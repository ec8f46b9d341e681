package pipeline

import (
	"bytes"
	"math"
	"testing"

	"github.com/matzehuels/reactorsim/pkg/errors"
	"github.com/matzehuels/reactorsim/pkg/reactor"
)

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{"defaults", Options{Progress: 50}, ""},
		{"all formats", Options{Progress: 0, Formats: []string{"svg", "png", "json", "txt"}}, ""},
		{"upper bound", Options{Progress: 100, Scale: errors.MaxScale}, ""},
		{"negative progress", Options{Progress: -1}, errors.ErrCodeInvalidProgress},
		{"progress above 100", Options{Progress: 100.5}, errors.ErrCodeInvalidProgress},
		{"NaN progress", Options{Progress: math.NaN()}, errors.ErrCodeInvalidProgress},
		{"unknown format", Options{Progress: 10, Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"case-sensitive format", Options{Progress: 10, Formats: []string{"SVG"}}, errors.ErrCodeInvalidFormat},
		{"scale too small", Options{Progress: 10, Scale: 0.1}, errors.ErrCodeInvalidScale},
		{"scale too large", Options{Progress: 10, Scale: 20}, errors.ErrCodeInvalidScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Progress: 42}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Scale != DefaultScale {
		t.Errorf("defaults changed on second call: %+v", opts)
	}
}

func TestAnimateOptionsValidateAndSetDefaults(t *testing.T) {
	opts := AnimateOptions{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Every != DefaultEvery {
		t.Errorf("Every = %d, want %d", opts.Every, DefaultEvery)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	// 5 ticks of 200ms is one second.
	if opts.Delay != 100 {
		t.Errorf("Delay = %d, want 100", opts.Delay)
	}

	bad := []AnimateOptions{
		{Every: -1},
		{Every: MaxEvery + 1},
		{Every: 1, Scale: 100},
		{Every: 1, Delay: -5},
	}
	for _, o := range bad {
		o := o
		if err := o.ValidateAndSetDefaults(); err == nil {
			t.Errorf("%+v should fail validation", o)
		} else if !errors.IsValidation(err) {
			t.Errorf("%+v: want validation error, got %v", o, err)
		}
	}
}

func TestTimeline(t *testing.T) {
	tl := Timeline(1)
	if len(tl) != 501 {
		t.Fatalf("Timeline(1) has %d frames, want 501", len(tl))
	}
	if tl[0] != 0 {
		t.Errorf("first frame = %v, want 0", tl[0])
	}
	if tl[len(tl)-1] != 100 {
		t.Errorf("last frame = %v, want exactly 100", tl[len(tl)-1])
	}
	for i := 1; i < len(tl); i++ {
		if tl[i] <= tl[i-1] {
			t.Fatalf("timeline not increasing at %d: %v -> %v", i, tl[i-1], tl[i])
		}
		if tl[i] > 100 {
			t.Fatalf("timeline exceeds 100 at %d: %v", i, tl[i])
		}
	}

	tl = Timeline(100)
	want := []float64{0, 20, 40, 60, 80, 100}
	if len(tl) != len(want) {
		t.Fatalf("Timeline(100) = %v, want %v", tl, want)
	}
	for i := range want {
		if math.Abs(tl[i]-want[i]) > 1e-6 {
			t.Errorf("Timeline(100)[%d] = %v, want %v", i, tl[i], want[i])
		}
	}

	// A stride that does not divide the run still ends at 100.
	tl = Timeline(7)
	if tl[len(tl)-1] != 100 {
		t.Errorf("Timeline(7) ends at %v, want 100", tl[len(tl)-1])
	}
}

func TestRenderAll(t *testing.T) {
	f := reactor.Compute(90)

	artifacts, err := RenderAll(f, []string{FormatSVG, FormatText}, 1)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(artifacts))
	}
	for _, format := range []string{FormatSVG, FormatText} {
		want, err := RenderFrame(f, format, 1)
		if err != nil {
			t.Fatalf("RenderFrame(%s): %v", format, err)
		}
		if !bytes.Equal(artifacts[format], want) {
			t.Errorf("%s artifact differs from RenderFrame", format)
		}
	}

	_, err = RenderAll(f, []string{FormatSVG, "pdf"}, 1)
	if errors.GetCode(err) != errors.ErrCodeUnsupported {
		t.Errorf("RenderAll with pdf: code = %q, want %q", errors.GetCode(err), errors.ErrCodeUnsupported)
	}
}
