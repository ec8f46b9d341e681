package sim

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reactorsim/pkg/reactor"
)

// Observer is notified with the new state after every change. It runs while
// the player's lock is held, so it must not call back into the Player.
type Observer func(State)

// Player owns a State and the single auto-play timer. The timer is either
// armed or disarmed; arming an armed player is a no-op, so at most one timer
// drives a player at any time. Player is safe for concurrent use.
type Player struct {
	mu       sync.Mutex
	state    State
	interval time.Duration
	observer Observer
	logger   *log.Logger

	timer  *time.Timer
	gen    uint64 // invalidates callbacks of disarmed timers
	closed bool
}

// Option configures a Player.
type Option func(*Player)

// WithInterval overrides the tick period (default TickInterval).
func WithInterval(d time.Duration) Option {
	return func(p *Player) { p.interval = d }
}

// WithObserver sets the function called after every state change.
func WithObserver(fn Observer) Option {
	return func(p *Player) { p.observer = fn }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// WithState sets the initial state. A playing state arms the timer.
func WithState(s State) Option {
	return func(p *Player) {
		p.state = s
		p.state.Progress = reactor.Clamp(s.Progress)
	}
}

// NewPlayer creates a player and notifies the observer with the initial state
// so the first frame gets drawn.
func NewPlayer(opts ...Option) *Player {
	p := &Player{interval: TickInterval, logger: log.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.interval <= 0 {
		p.interval = TickInterval
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Playing() {
		p.arm()
	}
	p.notify()
	return p
}

// State returns a snapshot of the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Armed reports whether the auto-play timer is scheduled.
func (p *Player) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.timer != nil
}

// Snapshot returns the state and whether the timer is armed, read together
// so a concurrent tick cannot split them.
func (p *Player) Snapshot() (State, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state, p.timer != nil
}

// Scrub sets progress manually. Auto-play, if active, continues from the new
// value.
func (p *Player) Scrub(v float64) State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Scrub(v)
	p.notify()
	return p.state
}

// Toggle starts, pauses, resumes or restarts auto-play depending on the
// current mode. It has no effect after Close.
func (p *Player) Toggle() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return p.state
	}

	p.state.Toggle()
	if p.state.Playing() {
		p.logger.Debug("auto-play armed", "progress", p.state.Progress)
		p.arm()
	} else {
		p.logger.Debug("auto-play paused", "progress", p.state.Progress)
		p.disarm()
	}
	p.notify()
	return p.state
}

// Close disarms the timer. The player keeps answering State and Scrub.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disarm()
	if p.state.Playing() {
		p.state.Mode = ModePaused
	}
	p.closed = true
}

func (p *Player) arm() {
	if p.timer != nil {
		return
	}
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.interval, func() { p.fire(gen) })
}

func (p *Player) disarm() {
	if p.timer == nil {
		return
	}
	p.timer.Stop()
	p.timer = nil
	p.gen++
}

// fire runs on the timer goroutine. Callbacks from a timer that has since been
// disarmed see a newer generation and return without touching the state.
func (p *Player) fire(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.timer == nil {
		return
	}

	if p.state.Tick() {
		p.timer = nil
		p.gen++
		p.logger.Debug("auto-play finished", "progress", p.state.Progress)
	} else {
		p.timer.Reset(p.interval)
	}
	p.notify()
}

func (p *Player) notify() {
	if p.observer != nil {
		p.observer(p.state)
	}
}
