package timer

import (
	"context"
	"sync"
	"time"

	"github.com/manav03panchal/countdown/internal/clock"
	"github.com/manav03panchal/countdown/internal/logging"
	"github.com/manav03panchal/countdown/internal/model"
)

// DefaultInterval is the sampling interval used when none is configured.
const DefaultInterval = 500 * time.Millisecond

// Config contains runtime options for an Engine.
type Config struct {
	Interval time.Duration
	Clock    clock.Clock
}

// Engine samples the clock, computes frames and pushes them to a Sink.
type Engine struct {
	mu       sync.Mutex
	spec     model.TargetSpec
	sink     Sink
	clock    clock.Clock
	interval time.Duration
	last     model.Frame
	ticks    int
	finished bool
}

// NewEngine creates an engine for spec that renders into sink.
func NewEngine(spec model.TargetSpec, sink Sink, config Config) *Engine {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.Clock == nil {
		config.Clock = clock.System
	}
	return &Engine{
		spec:     spec,
		sink:     sink,
		clock:    config.Clock,
		interval: config.Interval,
	}
}

// Spec returns the target the engine counts toward.
func (e *Engine) Spec() model.TargetSpec {
	return e.spec
}

// Interval returns the sampling interval.
func (e *Engine) Interval() time.Duration {
	return e.interval
}

// Last returns the most recently emitted frame.
func (e *Engine) Last() model.Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Finished reports whether the engine reached its terminal phase.
func (e *Engine) Finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished
}

// Tick samples the clock once and pushes the frame to the sink. It returns
// false once the engine has finished; later calls leave the sink untouched.
func (e *Engine) Tick() (model.Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return e.last, false
	}

	frame := Compute(e.spec, e.clock.Now())
	e.push(frame)

	if e.ticks > 0 && frame.Phase != e.last.Phase {
		logging.Info("phase changed", logging.KeyPhase, frame.Phase.String(), "from", e.last.Phase.String())
	}
	e.last = frame
	e.ticks++

	if frame.Phase.Terminal() {
		e.finished = true
		logging.Info("countdown finished", logging.KeyTarget, frame.Target)
		return frame, false
	}
	return frame, true
}

// push applies frame to the sink. A failing element never blocks the others.
func (e *Engine) push(frame model.Frame) {
	if err := e.sink.SetLabel(frame.Label()); err != nil {
		logging.DebugLog("label not updated", logging.KeyError, err)
	}
	for _, u := range model.Units {
		if err := e.sink.SetUnit(u, frame.Value(u), frame.Fractions.Get(u)); err != nil {
			logging.DebugLog("unit not updated", logging.KeyUnit, u.String(), logging.KeyError, err)
		}
	}
	if f, ok := e.sink.(Flusher); ok {
		if err := f.Flush(); err != nil {
			logging.Warn("flush failed", logging.KeyError, err)
		}
	}
}

// Run ticks immediately, then once per interval until the engine finishes
// or ctx is cancelled. Each tick is scheduled only after the previous one
// completed.
func (e *Engine) Run(ctx context.Context) error {
	if _, more := e.Tick(); !more {
		return nil
	}

	for {
		fired := make(chan struct{})
		t := e.clock.AfterFunc(e.interval, func() { close(fired) })

		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-fired:
			if _, more := e.Tick(); !more {
				return nil
			}
		}
	}
}
