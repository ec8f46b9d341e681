package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/reactorsim/pkg/errors"
	"github.com/matzehuels/reactorsim/pkg/reactor"
)

// reportCommand creates the report command printing the status and volume
// readout for one moment, or a table over the whole run.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		asTable bool
		asJSON  bool
		step    int
	)

	cmd := &cobra.Command{
		Use:   "report [progress]",
		Short: "Print the phase and volumes at a point of the run",
		Example: `  reactorsim report 50
  reactorsim report --table
  reactorsim report 75 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asTable {
				if step < 1 || step > int(reactor.DurationHours) {
					return errors.New(errors.ErrCodeInvalidInput, "step must be between 1 and %d hours", int(reactor.DurationHours))
				}
				return writeHourlyTable(out, step)
			}

			p := reactor.MinProgress
			if len(args) == 1 {
				v, err := errors.ParseProgress(args[0])
				if err != nil {
					return err
				}
				p = v
			}
			f := reactor.Compute(p)
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(f)
			}
			writeReport(out, f)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "print a table over the whole run")
	cmd.Flags().IntVar(&step, "step", 1, "hours between table rows")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the frame as JSON")

	return cmd
}

// writeReport prints the status sentence and the report line.
func writeReport(w io.Writer, f reactor.Frame) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("%.1f h", f.Volumes.Hours))+"  "+formatPhase(f.Phase))
	fmt.Fprintln(w, f.Status)
	fmt.Fprintln(w, StyleHighlight.Render(f.Report))
}

// hourlyFrames returns the frames at every step hours from 0 to 24.
func hourlyFrames(step int) []reactor.Frame {
	var frames []reactor.Frame
	for h := 0; h <= int(reactor.DurationHours); h += step {
		frames = append(frames, reactor.Compute(float64(h)/reactor.DurationHours*reactor.MaxProgress))
	}
	if last := frames[len(frames)-1]; last.Progress < reactor.MaxProgress {
		frames = append(frames, reactor.Compute(reactor.MaxProgress))
	}
	return frames
}

// writeHourlyTable prints the run as a table with one row per step hours.
func writeHourlyTable(w io.Writer, step int) error {
	frames := hourlyFrames(step)
	rows := make([][]string, len(frames))
	for i, f := range frames {
		rows[i] = []string{
			fmt.Sprintf("%.0f h", f.Volumes.Hours),
			fmt.Sprintf("%.1f%%", f.Progress),
			f.Phase.String(),
			fmt.Sprintf("%.2f L", f.Volumes.Biodiesel),
			fmt.Sprintf("%.2f L", f.Volumes.Glycerin),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Tiempo", "Progreso", "Fase", "Biodiésel", "Glicerina").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(frames) {
				return cellStyle.Foreground(phaseColors[frames[row].Phase])
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, strings.TrimRight(t.Render(), "\n"))
	return err
}
