package sim

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestLabels(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeIdle, "▶ Iniciar"},
		{ModePlaying, "⏸ Pausar"},
		{ModePaused, "▶ Reanudar"},
		{ModeFinished, "▶ Reiniciar"},
	}
	for _, tt := range tests {
		if got := (State{Mode: tt.mode}).Label(); got != tt.want {
			t.Errorf("%v label = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestToggleTransitions(t *testing.T) {
	tests := []struct {
		name         string
		from         State
		wantMode     Mode
		wantProgress float64
	}{
		{"start", State{Progress: 0, Mode: ModeIdle}, ModePlaying, 0},
		{"pause", State{Progress: 40, Mode: ModePlaying}, ModePaused, 40},
		{"resume", State{Progress: 40, Mode: ModePaused}, ModePlaying, 40},
		{"restart", State{Progress: 100, Mode: ModeFinished}, ModePlaying, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.from
			s.Toggle()
			if s.Mode != tt.wantMode || s.Progress != tt.wantProgress {
				t.Errorf("Toggle() = %+v, want mode %v progress %v", s, tt.wantMode, tt.wantProgress)
			}
		})
	}
}

func TestScrub(t *testing.T) {
	var s State
	s.Scrub(150)
	if s.Progress != 100 {
		t.Errorf("Scrub(150) progress = %v", s.Progress)
	}
	s.Scrub(-3)
	if s.Progress != 0 {
		t.Errorf("Scrub(-3) progress = %v", s.Progress)
	}
	if s.Mode != ModeIdle {
		t.Errorf("scrubbing should not change idle mode, got %v", s.Mode)
	}

	s = State{Progress: 100, Mode: ModeFinished}
	s.Scrub(100)
	if s.Mode != ModeFinished {
		t.Errorf("scrub to 100 should stay finished, got %v", s.Mode)
	}
	s.Scrub(40)
	if s.Mode != ModePaused {
		t.Errorf("scrub back from finished = %v, want paused", s.Mode)
	}

	s = State{Progress: 10, Mode: ModePlaying}
	s.Scrub(60)
	if !s.Playing() || s.Progress != 60 {
		t.Errorf("scrub while playing = %+v", s)
	}
}

func TestTickOnlyWhilePlaying(t *testing.T) {
	for _, m := range []Mode{ModeIdle, ModePaused, ModeFinished} {
		s := State{Progress: 10, Mode: m}
		if s.Tick() || s.Progress != 10 {
			t.Errorf("%v: Tick changed state to %+v", m, s)
		}
	}
}

func TestTickRunsToExactlyHundred(t *testing.T) {
	s := State{Mode: ModePlaying}
	ticks := 0
	prev := s.Progress
	for !s.Tick() {
		ticks++
		if d := s.Progress - prev; math.Abs(d-TickStep) > 1e-9 {
			t.Fatalf("tick %d advanced by %v, want %v", ticks, d, TickStep)
		}
		if s.Progress > 100 {
			t.Fatalf("progress exceeded 100: %v", s.Progress)
		}
		prev = s.Progress
		if ticks > 1000 {
			t.Fatal("run did not finish")
		}
	}
	ticks++

	if s.Progress != 100 {
		t.Errorf("final progress = %v, want exactly 100", s.Progress)
	}
	if s.Mode != ModeFinished || s.Label() != "▶ Reiniciar" {
		t.Errorf("final state = %+v", s)
	}
	if ticks != 500 {
		t.Errorf("run took %d ticks, want 500", ticks)
	}
}

func TestTickFromNearEnd(t *testing.T) {
	s := State{Progress: 99.95, Mode: ModePlaying}
	if !s.Tick() {
		t.Fatal("tick past 100 should finish")
	}
	if s.Progress != 100 {
		t.Errorf("progress = %v, want 100", s.Progress)
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeIdle, ModePlaying, ModePaused, ModeFinished} {
		want := State{Progress: 42.4, Mode: mode}
		data, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got State
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip of %+v gave %+v", want, got)
		}
	}

	var s State
	if err := json.Unmarshal([]byte(`{"progress":1,"mode":"paused"}`), &s); err != nil {
		t.Fatalf("decode paused: %v", err)
	}
	if s.Mode != ModePaused || s.Progress != 1 {
		t.Errorf("decoded %+v", s)
	}
	if err := json.Unmarshal([]byte(`{"mode":"running"}`), &s); err == nil {
		t.Error("expected error for unknown mode")
	}
}
