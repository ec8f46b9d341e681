// Package pipeline turns a progress value into rendered artifacts.
//
// This package implements the compute → draw → encode pipeline shared by the
// CLI and the HTTP server. A [Runner] wraps the pure reactor core with a
// cache, so repeated requests for the same frame are served without drawing.
//
// # Formats
//
//   - svg: vector scene
//   - png: raster scene at the requested scale
//   - json: the computed frame plus the recorded drawing operations
//   - txt: the status sentence and the volume report
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, pipeline.Options{
//	    Progress: 50,
//	    Formats:  []string{"svg", "txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Animations replay a full auto-play run into a GIF:
//
//	gif, err := runner.Animate(ctx, pipeline.AnimateOptions{Every: 5})
package pipeline

import (
	"github.com/matzehuels/reactorsim/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the raster scale factor used for PNG and GIF output.
	DefaultScale = 2.0

	// DefaultEvery is the number of simulation ticks between animation frames.
	DefaultEvery = 5

	// MaxEvery bounds the animation stride to keep at least a few frames.
	MaxEvery = 100
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
	FormatText: true,
}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatJSON: "application/json",
	FormatText: "text/plain; charset=utf-8",
}

// =============================================================================
// Options
// =============================================================================

// Options configures a single-frame render.
type Options struct {
	Progress float64  `json:"progress"`
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Refresh bypasses cache reads; fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults checks user-supplied values and fills in defaults.
// Progress outside [0, 100] is rejected rather than clamped.
func (o *Options) ValidateAndSetDefaults() error {
	if err := errors.ValidateProgress(o.Progress); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := errors.ValidateFormats(o.Formats, ValidFormats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	return errors.ValidateScale(o.Scale)
}

// AnimateOptions configures an animation of a full run.
type AnimateOptions struct {
	// Every is the number of ticks between captured frames.
	Every int `json:"every,omitempty"`
	// Scale is the raster scale factor.
	Scale float64 `json:"scale,omitempty"`
	// Delay is the per-frame delay in 100ths of a second. Zero plays the
	// run in real time.
	Delay int `json:"delay,omitempty"`

	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults checks values and fills in defaults.
func (o *AnimateOptions) ValidateAndSetDefaults() error {
	if o.Every == 0 {
		o.Every = DefaultEvery
	}
	if o.Every < 0 || o.Every > MaxEvery {
		return errors.New(errors.ErrCodeInvalidInput, "every must be between 1 and %d, got %d", MaxEvery, o.Every)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Delay < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "delay cannot be negative, got %d", o.Delay)
	}
	if o.Delay == 0 {
		o.Delay = realTimeDelay(o.Every)
	}
	return nil
}
