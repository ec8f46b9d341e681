package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/reactorsim/pkg/reactor"
	"github.com/matzehuels/reactorsim/pkg/sim"
)

func update(t *testing.T, m playModel, msg tea.Msg) (playModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(playModel)
	if !ok {
		t.Fatalf("Update returned %T, want playModel", next)
	}
	return pm, cmd
}

func TestPlayModelToggleAndTick(t *testing.T) {
	m := newPlayModel(sim.State{Progress: 50}, time.Millisecond)
	if cmd := m.Init(); cmd != nil {
		t.Error("idle model should not schedule a tick")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.state.Playing() {
		t.Fatalf("mode = %v, want playing", m.state.Mode)
	}
	if cmd == nil {
		t.Fatal("toggle to playing should schedule a tick")
	}

	m, _ = update(t, m, tickMsg{gen: m.gen})
	if got := m.state.Progress; got < 50.19 || got > 50.21 {
		t.Errorf("progress after tick = %v, want 50.2", got)
	}
	if m.frame.Progress != m.state.Progress {
		t.Errorf("frame progress = %v, want %v", m.frame.Progress, m.state.Progress)
	}
}

func TestPlayModelStaleTick(t *testing.T) {
	m := newPlayModel(sim.State{Progress: 10}, time.Millisecond)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace}) // play
	stale := m.gen
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace}) // pause
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace}) // resume

	m, cmd := update(t, m, tickMsg{gen: stale})
	if cmd != nil {
		t.Error("stale tick should not schedule another tick")
	}
	if m.state.Progress != 10 {
		t.Errorf("stale tick moved progress to %v", m.state.Progress)
	}
}

func TestPlayModelPausedIgnoresTick(t *testing.T) {
	m := newPlayModel(sim.State{Progress: 10}, time.Millisecond)
	m, _ = update(t, m, tickMsg{gen: m.gen})
	if m.state.Progress != 10 {
		t.Errorf("idle model ticked to %v", m.state.Progress)
	}
}

func TestPlayModelScrub(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		key   tea.KeyMsg
		want  float64
	}{
		{"right", 50, tea.KeyMsg{Type: tea.KeyRight}, 51},
		{"left", 50, tea.KeyMsg{Type: tea.KeyLeft}, 49},
		{"left clamps", 0.5, tea.KeyMsg{Type: tea.KeyLeft}, 0},
		{"right clamps", 99.5, tea.KeyMsg{Type: tea.KeyRight}, 100},
		{"home", 42, tea.KeyMsg{Type: tea.KeyHome}, 0},
		{"end", 42, tea.KeyMsg{Type: tea.KeyEnd}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPlayModel(sim.State{Progress: tt.start}, time.Millisecond)
			m, _ = update(t, m, tt.key)
			if m.state.Progress != tt.want {
				t.Errorf("progress = %v, want %v", m.state.Progress, tt.want)
			}
			if m.frame.Phase != reactor.PhaseOf(tt.want) {
				t.Errorf("frame phase = %v, want %v", m.frame.Phase, reactor.PhaseOf(tt.want))
			}
		})
	}
}

func TestPlayModelFinish(t *testing.T) {
	m := newPlayModel(sim.State{Progress: 99.9, Mode: sim.ModePlaying}, time.Millisecond)
	if m.Init() == nil {
		t.Fatal("playing model should schedule a tick on init")
	}

	m, cmd := update(t, m, tickMsg{gen: m.gen})
	if cmd != nil {
		t.Error("finished run should not schedule another tick")
	}
	if m.state.Progress != reactor.MaxProgress || m.state.Mode != sim.ModeFinished {
		t.Errorf("state = %+v, want finished at 100", m.state)
	}
	if got := m.state.Label(); got != "▶ Reiniciar" {
		t.Errorf("label = %q", got)
	}

	// Toggling a finished run restarts from zero.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.state.Progress != 0 || !m.state.Playing() {
		t.Errorf("after restart state = %+v", m.state)
	}
}

func TestPlayModelQuit(t *testing.T) {
	m := newPlayModel(sim.State{}, time.Millisecond)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPlayModelView(t *testing.T) {
	m := newPlayModel(sim.State{Progress: 80}, time.Millisecond)
	view := m.View()

	for _, want := range []string{
		reactor.PhaseSeparated.Status(),
		"Tiempo: 19.2 h",
		"▶ Iniciar",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRunPlayPlain(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	var out syncBuffer

	err := c.runPlayPlain(context.Background(), &out, playOpts{progress: 96, interval: time.Millisecond})
	if err != nil {
		t.Fatalf("runPlayPlain: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		reactor.PhaseSeparated.Status(),
		"Tiempo: 23.0 h",
		"Tiempo: 24.0 h",
		"Biodiésel: 0.90 L",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunPlayPlainCancelled(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.runPlayPlain(ctx, &syncBuffer{}, playOpts{progress: 0, interval: time.Hour})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
