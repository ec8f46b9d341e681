// Package sim owns the simulation state and the auto-play timer.
//
// [State] is a plain value with the two interaction handlers (scrub, toggle)
// and the timer tick as methods. [Player] wraps one State with exactly one
// repeating timer and notifies an observer, usually a reactor.Renderer, after
// every change:
//
//	out := &reactor.TextDisplay{}
//	r := reactor.NewRenderer(svg.New(reactor.SceneWidth, reactor.SceneHeight), out)
//	p := sim.NewPlayer(sim.WithObserver(func(s sim.State) { r.Render(s.Progress) }))
//	defer p.Close()
//	p.Toggle() // start auto-play
package sim

import (
	"fmt"
	"time"

	"github.com/matzehuels/reactorsim/pkg/reactor"
)

// Auto-play cadence: 0.2 progress every 200 ms, 500 ticks for a full run.
const (
	TickInterval = 200 * time.Millisecond
	TickStep     = 0.2
)

// finishEpsilon absorbs float drift from repeated TickStep additions so the
// run ends on the tick that reaches 100 rather than one later.
const finishEpsilon = 1e-9

// Mode is the play state shown on the play/pause control.
type Mode int

const (
	ModeIdle Mode = iota
	ModePlaying
	ModePaused
	ModeFinished
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeFinished:
		return "finished"
	}
	return "unknown"
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a mode name written by MarshalText.
func (m *Mode) UnmarshalText(text []byte) error {
	for _, candidate := range []Mode{ModeIdle, ModePlaying, ModePaused, ModeFinished} {
		if string(text) == candidate.String() {
			*m = candidate
			return nil
		}
	}
	return fmt.Errorf("sim: unknown mode %q", text)
}

// State is the simulation state: the progress value and the play mode.
type State struct {
	Progress float64 `json:"progress"`
	Mode     Mode    `json:"mode"`
}

// Playing reports whether auto-play is active.
func (s State) Playing() bool { return s.Mode == ModePlaying }

// Label is the text of the play/pause control.
func (s State) Label() string {
	switch s.Mode {
	case ModePlaying:
		return "⏸ Pausar"
	case ModePaused:
		return "▶ Reanudar"
	case ModeFinished:
		return "▶ Reiniciar"
	default:
		return "▶ Iniciar"
	}
}

// Scrub sets progress from the slider. Leaving the finished state by moving
// the slider back turns it into a pause so the next toggle resumes from there.
func (s *State) Scrub(v float64) {
	s.Progress = reactor.Clamp(v)
	if s.Mode == ModeFinished && s.Progress < reactor.MaxProgress {
		s.Mode = ModePaused
	}
}

// Toggle flips between playing and paused. Toggling a finished run restarts
// it from zero.
func (s *State) Toggle() {
	switch s.Mode {
	case ModePlaying:
		s.Mode = ModePaused
	case ModeFinished:
		s.Progress = reactor.MinProgress
		s.Mode = ModePlaying
	default:
		s.Mode = ModePlaying
	}
}

// Tick advances progress by TickStep while playing and reports whether the
// run has just finished. Progress stops at exactly 100.
func (s *State) Tick() (finished bool) {
	if s.Mode != ModePlaying {
		return false
	}
	next := s.Progress + TickStep
	if next >= reactor.MaxProgress-finishEpsilon {
		s.Progress = reactor.MaxProgress
		s.Mode = ModeFinished
		return true
	}
	s.Progress = next
	return false
}
