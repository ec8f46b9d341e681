package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reactorsim/pkg/pipeline"
)

// animateOpts holds the command-line flags for the animate command.
type animateOpts struct {
	output  string
	every   int
	scale   float64
	delay   int
	noCache bool
	refresh bool
}

// animateCommand creates the animate command for rendering a whole run as GIF.
func (c *CLI) animateCommand() *cobra.Command {
	var opts animateOpts

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Render a full auto-play run as an animated GIF",
		Long: `Render a full auto-play run (0 to 100 in 0.2 steps) as an animated GIF.

One frame is captured every --every ticks, and the last frame is always the
finished batch. By default the delay matches real time, so a GIF with
--every 5 plays the 100 second run at its natural speed.`,
		Example: `  reactorsim animate
  reactorsim animate --every 25 --scale 1 -o quick.gif
  reactorsim animate --delay 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("scale") {
				opts.scale = c.Config.Render.Scale
			}
			return c.runAnimate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "reactor.gif", "output file")
	cmd.Flags().IntVar(&opts.every, "every", pipeline.DefaultEvery, "ticks between captured frames")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "raster scale factor")
	cmd.Flags().IntVar(&opts.delay, "delay", 0, "frame delay in 1/100 s (0 = real time)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")

	return cmd
}

func (c *CLI) runAnimate(ctx context.Context, opts animateOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	aopts := pipeline.AnimateOptions{
		Every:   opts.every,
		Scale:   opts.scale,
		Delay:   opts.delay,
		Refresh: opts.refresh,
	}
	if err := aopts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	frames := len(pipeline.Timeline(aopts.Every))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d frames...", frames))
	spinner.Start()

	data, err := runner.Animate(ctx, aopts)
	if err != nil {
		if ctx.Err() != nil {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Animation failed")
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d frames", frames))

	if err := writeArtifact(opts.output, data); err != nil {
		return err
	}
	printFile(opts.output)
	return nil
}
