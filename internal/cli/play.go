package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/reactorsim/pkg/canvas"
	"github.com/matzehuels/reactorsim/pkg/canvas/term"
	"github.com/matzehuels/reactorsim/pkg/errors"
	"github.com/matzehuels/reactorsim/pkg/reactor"
	"github.com/matzehuels/reactorsim/pkg/sim"
)

// scrubStep is how far the arrow keys move the time control.
const scrubStep = 1.0

// playOpts holds the play command options.
type playOpts struct {
	progress float64
	interval time.Duration
	autoplay bool
	plain    bool
}

// playCommand creates the play command for the interactive simulation.
func (c *CLI) playCommand() *cobra.Command {
	var opts playOpts

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the reactor interactively in the terminal",
		Long: `Run the reactor interactively in the terminal.

Space starts, pauses, resumes or restarts auto-play. The arrow keys scrub the
time control by 1%, home and end jump to the start and the end of the batch.

With --plain no TUI is started: the batch plays from --progress to the end and
one report line is printed per simulated hour.`,
		Example: `  reactorsim play
  reactorsim play --progress 60 --autoplay
  reactorsim play --plain --interval 10ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateProgress(opts.progress); err != nil {
				return err
			}
			if opts.interval <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "interval must be positive")
			}
			if opts.plain {
				return c.runPlayPlain(cmd.Context(), cmd.OutOrStdout(), opts)
			}
			return c.runPlayTUI(cmd.Context(), opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.progress, "progress", "p", reactor.MinProgress, "starting progress (0-100)")
	cmd.Flags().DurationVar(&opts.interval, "interval", sim.TickInterval, "auto-play tick period")
	cmd.Flags().BoolVar(&opts.autoplay, "autoplay", false, "start playing immediately")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print hourly reports instead of starting the TUI")

	return cmd
}

func (c *CLI) runPlayTUI(ctx context.Context, opts playOpts) error {
	start := sim.State{Progress: opts.progress}
	if opts.autoplay {
		start.Toggle()
	}

	c.Logger.Debug("starting play TUI", "progress", start.Progress, "interval", opts.interval)
	prog := tea.NewProgram(newPlayModel(start, opts.interval), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "terminal UI")
	}
	if m, ok := final.(playModel); ok {
		c.Logger.Debug("play TUI closed", "progress", m.state.Progress, "mode", m.state.Mode)
	}
	return nil
}

// runPlayPlain drives a sim.Player and prints a report whenever the simulated
// hour changes, until the batch finishes or ctx is cancelled.
func (c *CLI) runPlayPlain(ctx context.Context, out io.Writer, opts playOpts) error {
	surface := canvas.NewRecorder()
	display := &reactor.TextDisplay{}
	renderer := reactor.NewRenderer(surface, display)

	done := make(chan struct{})
	finished := false
	lastHour := -1
	lastPhase := reactor.Phase(-1)

	observer := func(st sim.State) {
		surface.Reset()
		f := renderer.Render(st.Progress)
		if f.Phase != lastPhase {
			lastPhase = f.Phase
			fmt.Fprintln(out, display.Status)
		}
		if h := int(f.Volumes.Hours); h != lastHour || st.Mode == sim.ModeFinished {
			lastHour = h
			fmt.Fprintln(out, display.Report)
		}
		if st.Mode == sim.ModeFinished && !finished {
			finished = true
			close(done)
		}
	}

	player := sim.NewPlayer(
		sim.WithState(sim.State{Progress: opts.progress}),
		sim.WithInterval(opts.interval),
		sim.WithObserver(observer),
		sim.WithLogger(c.Logger),
	)
	defer player.Close()

	player.Toggle()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// =============================================================================
// TUI model
// =============================================================================

type playKeys struct {
	Toggle  key.Binding
	Back    key.Binding
	Forward key.Binding
	Start   key.Binding
	End     key.Binding
	Quit    key.Binding
}

func (k playKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Back, k.Forward, k.Quit}
}

func (k playKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Toggle, k.Back, k.Forward}, {k.Start, k.End, k.Quit}}
}

var defaultPlayKeys = playKeys{
	Toggle:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "play/pause")),
	Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "-1%")),
	Forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "+1%")),
	Start:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "start")),
	End:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "end")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// tickMsg is one auto-play step. gen ties it to the arming that scheduled
// it; ticks from an earlier arming are dropped.
type tickMsg struct{ gen int }

type playModel struct {
	state    sim.State
	gen      int
	interval time.Duration

	keys playKeys
	help help.Model
	bar  progressbar.Model

	surface  *term.Canvas
	display  *reactor.TextDisplay
	renderer *reactor.Renderer
	frame    reactor.Frame
}

var (
	styleButton = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(colorAmber).Padding(0, 1)
	stylePanel  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

func newPlayModel(start sim.State, interval time.Duration) playModel {
	surface := term.New(reactor.SceneWidth, reactor.SceneHeight)
	cols, _ := surface.Size()
	display := &reactor.TextDisplay{}

	m := playModel{
		state:    start,
		interval: interval,
		keys:     defaultPlayKeys,
		help:     help.New(),
		bar: progressbar.New(
			progressbar.WithSolidFill(string(colorAmber)),
			progressbar.WithoutPercentage(),
			progressbar.WithWidth(cols),
		),
		surface:  surface,
		display:  display,
		renderer: reactor.NewRenderer(surface, display),
	}
	m.redraw()
	return m
}

func (m playModel) Init() tea.Cmd {
	if m.state.Playing() {
		return m.tick()
	}
	return nil
}

func (m playModel) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.state.Toggle()
			m.gen++
			m.redraw()
			if m.state.Playing() {
				return m, m.tick()
			}
		case key.Matches(msg, m.keys.Back):
			m.scrub(m.state.Progress - scrubStep)
		case key.Matches(msg, m.keys.Forward):
			m.scrub(m.state.Progress + scrubStep)
		case key.Matches(msg, m.keys.Start):
			m.scrub(reactor.MinProgress)
		case key.Matches(msg, m.keys.End):
			m.scrub(reactor.MaxProgress)
		}

	case tickMsg:
		if msg.gen != m.gen || !m.state.Playing() {
			return m, nil
		}
		finished := m.state.Tick()
		m.redraw()
		if !finished {
			return m, m.tick()
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *playModel) scrub(v float64) {
	m.state.Scrub(v)
	m.redraw()
}

func (m *playModel) redraw() {
	m.frame = m.renderer.Render(m.state.Progress)
}

func (m playModel) View() string {
	header := StyleTitle.Render("reactorsim") + StyleDim.Render(fmt.Sprintf("  %.1f h / %.0f h  ", m.frame.Volumes.Hours, reactor.DurationHours)) +
		formatPhase(m.frame.Phase)

	timeline := m.bar.ViewAs(m.state.Progress/reactor.MaxProgress) + StyleValue.Render(fmt.Sprintf(" %5.1f%%", m.state.Progress))

	text := lipgloss.JoinVertical(lipgloss.Left,
		StyleValue.Render(m.display.Status),
		StyleHighlight.Render(m.display.Report),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.surface.String(),
		timeline,
		"",
		styleButton.Render(m.state.Label()),
		"",
		stylePanel.Render(text),
		m.help.View(m.keys),
	)
}
