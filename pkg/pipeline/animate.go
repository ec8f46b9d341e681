package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"

	"github.com/matzehuels/reactorsim/pkg/canvas/raster"
	"github.com/matzehuels/reactorsim/pkg/errors"
	"github.com/matzehuels/reactorsim/pkg/reactor"
	"github.com/matzehuels/reactorsim/pkg/sim"
)

// realTimeDelay is the GIF delay, in 100ths of a second, that plays frames
// taken every n ticks at the auto-play cadence.
func realTimeDelay(every int) int {
	return every * int(sim.TickInterval.Milliseconds()) / 10
}

// Timeline replays an auto-play run from 0 and returns the progress of every
// n-th tick. The first value is 0 and the last is always 100.
func Timeline(every int) []float64 {
	if every < 1 {
		every = 1
	}
	var st sim.State
	st.Toggle()
	out := []float64{st.Progress}
	for ticks := 1; ; ticks++ {
		finished := st.Tick()
		if finished || ticks%every == 0 {
			out = append(out, st.Progress)
		}
		if finished {
			return out
		}
	}
}

// EncodeGIF draws one raster frame per progress value and encodes them as a
// looping GIF.
func EncodeGIF(ctx context.Context, progress []float64, scale float64, delay int) ([]byte, error) {
	anim := &gif.GIF{LoopCount: 0}
	for _, p := range progress {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := raster.New(reactor.SceneWidth, reactor.SceneHeight, scale)
		reactor.Draw(c, reactor.Compute(p))
		anim.Image = append(anim.Image, toPaletted(c.Image()))
		anim.Delay = append(anim.Delay, delay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode gif")
	}
	return buf.Bytes(), nil
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	pal := image.NewPaletted(b, palette.Plan9)
	draw.Draw(pal, b, img, b.Min, draw.Src)
	return pal
}
