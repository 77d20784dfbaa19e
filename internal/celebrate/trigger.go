// Package celebrate runs the one-time burst played when the countdown
// display mounts.
package celebrate

import (
	"fmt"
	"sync"
	"time"

	"github.com/manav03panchal/countdown/internal/clock"
	"github.com/manav03panchal/countdown/internal/logging"
)

// Default transition delays, measured from Fire.
const (
	DefaultFadeAfter  = 1100 * time.Millisecond
	DefaultClearAfter = 2300 * time.Millisecond
)

// State is the lifecycle position of a Trigger.
type State int

const (
	StateIdle State = iota
	StateActive
	StateFading
	StateCleared
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateFading:
		return "fading"
	case StateCleared:
		return "cleared"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Effect is the visual side of the burst.
type Effect interface {
	Play() error
	Fade() error
	Clear() error
}

// Config contains options for a Trigger.
type Config struct {
	FadeAfter  time.Duration
	ClearAfter time.Duration
	Clock      clock.Clock
	// Notify, when set, is called after every state change outside the
	// trigger's lock.
	Notify func(State)
}

// Trigger plays an Effect exactly once: Idle, Active, Fading, Cleared.
type Trigger struct {
	mu         sync.Mutex
	effect     Effect
	clock      clock.Clock
	fadeAfter  time.Duration
	clearAfter time.Duration
	notify     func(State)
	state      State
	timers     []clock.Timer
}

// NewTrigger creates an idle trigger for effect. A nil effect only tracks
// the marker.
func NewTrigger(effect Effect, config Config) *Trigger {
	if config.FadeAfter <= 0 {
		config.FadeAfter = DefaultFadeAfter
	}
	if config.ClearAfter <= 0 {
		config.ClearAfter = DefaultClearAfter
	}
	if config.ClearAfter < config.FadeAfter {
		config.ClearAfter = config.FadeAfter
	}
	if config.Clock == nil {
		config.Clock = clock.System
	}
	return &Trigger{
		effect:     effect,
		clock:      config.Clock,
		fadeAfter:  config.FadeAfter,
		clearAfter: config.ClearAfter,
		notify:     config.Notify,
	}
}

// Fire starts the burst. Only the first call has any effect; it reports
// whether this call started it.
func (t *Trigger) Fire() bool {
	t.mu.Lock()
	if t.state != StateIdle {
		t.mu.Unlock()
		return false
	}
	t.state = StateActive
	t.timers = append(t.timers,
		t.clock.AfterFunc(t.fadeAfter, t.fade),
		t.clock.AfterFunc(t.clearAfter, t.clear),
	)
	t.mu.Unlock()

	logging.DebugLog("celebration started", logging.KeyState, StateActive.String())
	t.run("play", func(e Effect) error { return e.Play() })
	t.changed(StateActive)
	return true
}

// Active reports whether the marker is on, which holds while the burst is
// active or fading.
func (t *Trigger) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == StateActive || t.state == StateFading
}

// State returns the current lifecycle state.
func (t *Trigger) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Stop cancels pending transitions and clears the marker. A stopped
// trigger can no longer fire.
func (t *Trigger) Stop() {
	t.mu.Lock()
	for _, timer := range t.timers {
		timer.Stop()
	}
	t.timers = nil
	prev := t.state
	t.state = StateCleared
	t.mu.Unlock()

	if prev == StateActive || prev == StateFading {
		t.run("clear", func(e Effect) error { return e.Clear() })
	}
	if prev != StateCleared {
		t.changed(StateCleared)
	}
}

func (t *Trigger) fade() {
	t.mu.Lock()
	if t.state != StateActive {
		t.mu.Unlock()
		return
	}
	t.state = StateFading
	t.mu.Unlock()

	t.run("fade", func(e Effect) error { return e.Fade() })
	t.changed(StateFading)
}

func (t *Trigger) clear() {
	t.mu.Lock()
	if t.state != StateActive && t.state != StateFading {
		t.mu.Unlock()
		return
	}
	t.state = StateCleared
	t.timers = nil
	t.mu.Unlock()

	t.run("clear", func(e Effect) error { return e.Clear() })
	t.changed(StateCleared)
	logging.DebugLog("celebration cleared", logging.KeyState, StateCleared.String())
}

// run invokes one effect step. Errors and panics are logged and swallowed.
func (t *Trigger) run(step string, f func(Effect) error) {
	if t.effect == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Error("celebration effect panicked",
				logging.KeyOperation, step,
				logging.KeyError, fmt.Sprint(r),
			)
		}
	}()
	if err := f(t.effect); err != nil {
		logging.Error("celebration effect failed",
			logging.KeyOperation, step,
			logging.KeyError, err,
		)
	}
}

func (t *Trigger) changed(s State) {
	if t.notify != nil {
		t.notify(s)
	}
}
