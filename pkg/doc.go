// Package pkg provides the core libraries for the reactorsim biodiesel
// reactor simulation.
//
// # Overview
//
// Reactorsim maps a single time control, progress from 0 to 100 standing for
// 24 simulated hours, to a picture of a batch reactor and a readout of the
// volumes in it. Oil, methanol and lye react and settle into biodiesel on top
// of denser glycerin. The pkg directory is organized into four areas:
//
//  1. [reactor] and [sim] - Domain logic (frames, phases, auto-play)
//  2. [canvas] - Drawing surfaces (SVG, PNG, terminal, recorder)
//  3. [pipeline] - Orchestration (progress → frame → artifacts, animations)
//  4. [cache], [session], [config] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	progress (scrub or auto-play tick)
//	         ↓
//	    [reactor.Compute] (phase, layers, volumes, report)
//	         ↓
//	    [reactor.Draw] onto a [canvas.Context]
//	         ↓
//	    SVG/PNG/JSON/TXT output, GIF animation or terminal cells
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/reactorsim/pkg/canvas/svg"
//	    "github.com/matzehuels/reactorsim/pkg/reactor"
//	)
//
//	f := reactor.Compute(50)
//	fmt.Println(f.Status)
//	fmt.Println(f.Report) // Tiempo: 12.0 h | ... → Biodiésel: 0.45 L | Glicerina: 0.15 L
//
//	c := svg.New(reactor.SceneWidth, reactor.SceneHeight)
//	reactor.Draw(c, f)
//	os.WriteFile("reactor.svg", c.Bytes(), 0o644)
//
// # Main Packages
//
// ## Domain
//
// [reactor] - The deterministic mapping from progress to a [reactor.Frame]
// and the drawing of that frame. [reactor.Renderer] pushes each frame to a
// surface and a [reactor.Display] for the status and report lines.
//
// [sim] - The play state (idle, playing, paused, finished) with scrub, toggle
// and tick transitions, and [sim.Player], a thread-safe owner of one
// auto-play timer.
//
// ## Drawing
//
// [canvas] - The drawing surface interface, paints and colours. Backends:
//
//   - [canvas/svg]: SVG documents with gradient definitions
//   - [canvas/raster]: PNG through fogleman/gg
//   - [canvas/term]: terminal cells styled with lipgloss
//
// ## Orchestration
//
// [pipeline] - Render and animate runs shared by the CLI and the HTTP server,
// with artifact caching and observability hooks.
//
// ## Infrastructure
//
// [cache] - Artifact caches: file (CLI), LRU (server), Redis (shared), null.
//
// [session] - In-memory player sessions for the HTTP server with idle expiry.
//
// [config] - TOML configuration from the XDG config directory.
//
// [errors] - Coded errors and input validators.
//
// [observability] - Hook interfaces for render, cache and server events.
//
// [httputil] - JSON responses and query parsing for HTTP handlers.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/reactor/...    # Specific package
//	go test -run Example ./...   # Examples only
//
// [reactor]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/reactor
// [sim]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/sim
// [canvas]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/canvas
// [canvas/svg]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/canvas/svg
// [canvas/raster]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/canvas/raster
// [canvas/term]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/canvas/term
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/reactorsim/pkg/buildinfo
package pkg
