package model

import "time"

// Frame is the computed display state for a single tick.
type Frame struct {
	Phase     Phase         `json:"phase"`
	At        time.Time     `json:"at"`
	Target    time.Time     `json:"target"`
	LiveStart time.Time     `json:"live_start,omitempty"`
	Breakdown UnitBreakdown `json:"breakdown"`
	Fractions Fractions     `json:"fractions"`
}

// Value returns the zero-padded readout for u.
func (f Frame) Value(u Unit) string {
	return PadValue(f.Breakdown.Value(u))
}

// Label returns the target/phase caption shown above the rings.
func (f Frame) Label() string {
	switch f.Phase {
	case PhaseWaiting:
		return "Live at: " + formatLocal(f.LiveStart)
	case PhaseLive:
		return "Live since: " + formatLocal(f.LiveStart)
	case PhaseFinished:
		return "Target reached: " + formatLocal(f.Target)
	default:
		return "Target: " + formatLocal(f.Target)
	}
}

func formatLocal(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
