package tui

import (
	"fmt"
	"sync"

	"github.com/manav03panchal/countdown/internal/model"
	"github.com/manav03panchal/countdown/internal/timer"
)

type burstPhase int

const (
	burstOff burstPhase = iota
	burstOn
	burstFading
)

// Display is the shared view state. The engine writes it as a timer.Sink
// and the celebration trigger as a celebrate.Effect; trigger callbacks
// arrive off the UI goroutine, so every access is locked.
type Display struct {
	mu        sync.Mutex
	units     []model.Unit
	label     string
	values    map[model.Unit]string
	fractions map[model.Unit]float64
	burst     burstPhase
}

// NewDisplay creates a display with one ring per unit.
func NewDisplay(units ...model.Unit) *Display {
	if len(units) == 0 {
		units = model.Units[:]
	}
	d := &Display{
		units:     units,
		values:    make(map[model.Unit]string, len(units)),
		fractions: make(map[model.Unit]float64, len(units)),
	}
	for _, u := range units {
		d.values[u] = "--"
	}
	return d
}

// SetLabel implements timer.Sink.
func (d *Display) SetLabel(label string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.label = label
	return nil
}

// SetUnit implements timer.Sink.
func (d *Display) SetUnit(unit model.Unit, value string, fraction float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.values[unit]; !ok {
		return fmt.Errorf("%w: %s ring", timer.ErrElementMissing, unit)
	}
	d.values[unit] = value
	d.fractions[unit] = fraction
	return nil
}

// Play implements celebrate.Effect.
func (d *Display) Play() error {
	d.setBurst(burstOn)
	return nil
}

// Fade implements celebrate.Effect.
func (d *Display) Fade() error {
	d.setBurst(burstFading)
	return nil
}

// Clear implements celebrate.Effect.
func (d *Display) Clear() error {
	d.setBurst(burstOff)
	return nil
}

func (d *Display) setBurst(b burstPhase) {
	d.mu.Lock()
	d.burst = b
	d.mu.Unlock()
}

// displayState is a consistent copy of the display for one render.
type displayState struct {
	label     string
	units     []model.Unit
	values    map[model.Unit]string
	fractions map[model.Unit]float64
	burst     burstPhase
}

func (d *Display) snapshot() displayState {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := displayState{
		label:     d.label,
		units:     d.units,
		values:    make(map[model.Unit]string, len(d.values)),
		fractions: make(map[model.Unit]float64, len(d.fractions)),
		burst:     d.burst,
	}
	for u, v := range d.values {
		s.values[u] = v
	}
	for u, f := range d.fractions {
		s.fractions[u] = f
	}
	return s
}
