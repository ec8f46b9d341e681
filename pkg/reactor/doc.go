// Package reactor models a biodiesel transesterification batch and paints it.
//
// # Overview
//
// A single scalar, progress in [0, 100], stands for the elapsed fraction of a
// 24 hour reaction. Everything else is derived from it on every call and
// never stored:
//
//   - the [Phase] (mixing, intermediate separation, separated layers)
//   - the glycerin and biodiesel [Layers] heights inside the vessel
//   - the current [Volumes] and elapsed hours
//   - the status sentence and the volume report string
//
// [Compute] returns all of these as a [Frame]. [Draw] paints a frame onto any
// [canvas.Context]; [Renderer] combines both and also pushes the two text
// outputs to a [Display]. The same progress always yields the same frame,
// drawing calls and text.
//
// # Phases
//
// Thresholds are inclusive-low: progress 30 is already intermediate and 70 is
// already separated.
//
//	progress <  30  Mixing        two-stop ochre gradient over the vessel
//	30 <= p  <  70  Intermediate  three-stop gradient, middle stop at (p-30)/40
//	progress >= 70  Separated     biodiesel band, 30 unit transition, glycerin band
//
// # Usage
//
//	f := reactor.Compute(50)
//	fmt.Println(f.Status)
//	fmt.Println(f.Report) // Tiempo: 12.0 h | Aceite: 1.00 L | ...
//
//	svgCanvas := svg.New(reactor.SceneWidth, reactor.SceneHeight)
//	reactor.Draw(svgCanvas, f)
package reactor
