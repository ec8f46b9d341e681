// Package canvas defines the 2D drawing surface the reactor scene is painted on.
//
// # Overview
//
// The [Context] interface is the minimal subset of an immediate-mode 2D canvas
// the renderer needs: clearing, stroking and filling axis-aligned rectangles,
// and drawing text. Fills take a [Paint], which is either a [Solid] colour or a
// vertical [LinearGradient] built from ordered colour stops.
//
// Backends live in subpackages:
//
//   - [svg]: vector output as an SVG document
//   - [raster]: PNG output via fogleman/gg
//   - [term]: coloured terminal cells rendered with lipgloss
//
// [Recorder] captures every call as an [Op], which is how tests inspect what a
// renderer drew and how the JSON scene export is produced.
//
// # Gradients
//
// Stop offsets must lie in [0, 1]. [LinearGradient.AddStop] rejects anything
// else with [ErrStopOffset] instead of producing an undefined gradient:
//
//	g := canvas.NewLinearGradient(30, 270)
//	if err := g.AddStop(0, canvas.MustHex("#f7e48d")); err != nil {
//	    return err
//	}
//
// [svg]: github.com/matzehuels/reactorsim/pkg/canvas/svg
// [raster]: github.com/matzehuels/reactorsim/pkg/canvas/raster
// [term]: github.com/matzehuels/reactorsim/pkg/canvas/term
package canvas
