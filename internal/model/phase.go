package model

import "fmt"

// Phase is the current mode of the countdown engine.
type Phase int

const (
	// PhaseCounting counts down toward the target.
	PhaseCounting Phase = iota
	// PhaseWaiting counts down from the target toward the live start.
	PhaseWaiting
	// PhaseLive counts up from the live start, indefinitely.
	PhaseLive
	// PhaseFinished is terminal: the target was reached and no live phase follows.
	PhaseFinished
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCounting:
		return "counting"
	case PhaseWaiting:
		return "waiting"
	case PhaseLive:
		return "live"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further ticks follow this phase.
func (p Phase) Terminal() bool {
	return p == PhaseFinished
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseCounting, PhaseWaiting, PhaseLive, PhaseFinished} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}
