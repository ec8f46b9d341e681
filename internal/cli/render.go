package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reactorsim/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	progress float64  // point of the run, 0-100
	formats  []string // output formats: "svg", "png", "json", "txt"
	scale    float64  // raster scale factor for png
	output   string   // output file path (or base path for multiple outputs)
	noCache  bool     // skip the artifact cache entirely
	refresh  bool     // re-render even when cached
}

// renderCommand creates the render command for writing one frame to disk.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the reactor at one moment of the run",
		Long: `Render the reactor vessel at a given progress (0-100, where 100 is 24 h)
to SVG, PNG, JSON (frame plus drawing operations) or text (status and report).`,
		Example: `  reactorsim render -p 50
  reactorsim render -p 85 -f svg,png,txt -o batch
  reactorsim render -p 100 -f png --scale 4 -o final.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.Render.Formats)
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.Config.Render.Scale
			}
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.progress, "progress", "p", 0, "progress of the run, 0-100")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, json, txt (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "raster scale factor for png")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	if len(opts.formats) == 0 {
		opts.formats = []string{pipeline.FormatSVG}
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Render(ctx, pipeline.Options{
		Progress: opts.progress,
		Formats:  opts.formats,
		Scale:    opts.scale,
		Refresh:  opts.refresh,
	})
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, opts.progress, opts.formats)
	for _, format := range opts.formats {
		if err := writeArtifact(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", res.Frame.Phase.Status())
	printFrameSummary(res.Frame, res.CacheHit)
	for _, format := range opts.formats {
		printFile(paths[format])
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(opts.formats)))
	return nil
}

// defaultBase names output files after the progress value, e.g. "reactor-50".
func defaultBase(progress float64) string {
	return "reactor-" + strconv.FormatFloat(progress, 'f', -1, 64)
}

// outputPaths maps each format to its file. A single format with an explicit
// output path writes exactly there; otherwise the output (minus extension)
// is a base name suffixed with each format.
func outputPaths(output string, progress float64, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	if base == "" {
		base = defaultBase(progress)
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
