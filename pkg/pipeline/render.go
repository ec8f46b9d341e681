package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/reactorsim/pkg/canvas"
	"github.com/matzehuels/reactorsim/pkg/canvas/raster"
	"github.com/matzehuels/reactorsim/pkg/canvas/svg"
	"github.com/matzehuels/reactorsim/pkg/errors"
	"github.com/matzehuels/reactorsim/pkg/reactor"
)

// Scene is the JSON export of a frame: the derived values plus the drawing
// calls that paint it.
type Scene struct {
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Frame  reactor.Frame `json:"frame"`
	Ops    []canvas.Op   `json:"ops"`
}

// RenderFrame encodes f in the given format. scale only affects png.
func RenderFrame(f reactor.Frame, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatSVG:
		return renderSVG(f), nil
	case FormatPNG:
		return renderPNG(f, scale)
	case FormatJSON:
		return renderJSON(f)
	case FormatText:
		return renderText(f), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

// RenderAll encodes f in every requested format.
func RenderAll(f reactor.Frame, formats []string, scale float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := RenderFrame(f, format, scale)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(f reactor.Frame) []byte {
	c := svg.New(reactor.SceneWidth, reactor.SceneHeight)
	reactor.Draw(c, f)
	return c.Bytes()
}

func renderPNG(f reactor.Frame, scale float64) ([]byte, error) {
	c := raster.New(reactor.SceneWidth, reactor.SceneHeight, scale)
	reactor.Draw(c, f)
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func renderJSON(f reactor.Frame) ([]byte, error) {
	rec := canvas.NewRecorder()
	reactor.Draw(rec, f)
	data, err := json.MarshalIndent(Scene{
		Width:  reactor.SceneWidth,
		Height: reactor.SceneHeight,
		Frame:  f,
		Ops:    rec.Ops,
	}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return data, nil
}

func renderText(f reactor.Frame) []byte {
	return []byte(f.Status + "\n" + f.Report + "\n")
}
