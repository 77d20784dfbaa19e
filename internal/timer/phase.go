package timer

import (
	"time"

	"github.com/manav03panchal/countdown/internal/model"
)

// Decompose splits d into days, hours, minutes and whole seconds.
// Negative durations decompose to zero; sub-second remainders are dropped.
func Decompose(d time.Duration) model.UnitBreakdown {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)

	days := secs / 86400
	secs -= days * 86400
	hours := secs / 3600
	secs -= hours * 3600
	minutes := secs / 60
	secs -= minutes * 60

	return model.UnitBreakdown{
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(minutes),
		Seconds: int(secs),
	}
}

// Compute derives the display frame for spec at now. It is a pure function
// of its arguments.
func Compute(spec model.TargetSpec, now time.Time) model.Frame {
	frame := model.Frame{
		At:        now,
		Target:    spec.Target,
		LiveStart: spec.LiveStart,
	}

	switch {
	case now.Before(spec.Target):
		frame.Phase = model.PhaseCounting
		frame.Breakdown = Decompose(spec.Target.Sub(now))
		frame.Fractions = cycleFractions(frame.Breakdown, spec.TotalDays)

	case spec.HasLiveStart() && now.Before(spec.LiveStart):
		// The waiting span is at most one day long, so the days ring
		// uses a denominator of one.
		frame.Phase = model.PhaseWaiting
		frame.Breakdown = Decompose(spec.LiveStart.Sub(now))
		frame.Fractions = cycleFractions(frame.Breakdown, 1)

	case spec.HasLiveStart():
		elapsed := now.Sub(spec.LiveStart)
		frame.Phase = model.PhaseLive
		frame.Breakdown = Decompose(elapsed)
		frame.Fractions = liveFractions(elapsed)

	default:
		frame.Phase = model.PhaseFinished
		frame.Fractions = cycleFractions(model.UnitBreakdown{}, spec.TotalDays)
	}

	return frame
}

// cycleFractions reports how much of each unit's cycle has elapsed:
// (max - value) / max, so a ring fills as its unit counts down.
func cycleFractions(b model.UnitBreakdown, daysMax int) model.Fractions {
	var f model.Fractions
	for _, u := range model.Units {
		denom := u.Modulus()
		if u == model.UnitDays {
			denom = daysMax
		}
		if denom < 1 {
			denom = 1
		}
		f[u] = clamp(float64(denom-b.Value(u)) / float64(denom))
	}
	return f
}

// liveFractions reports the position inside each unit's current cycle at
// millisecond precision, so rings fill continuously while counting up.
func liveFractions(elapsed time.Duration) model.Fractions {
	if elapsed < 0 {
		elapsed = 0
	}
	ms := elapsed.Milliseconds()

	var f model.Fractions
	for _, u := range model.Units {
		cycle := u.Length().Milliseconds()
		f[u] = clamp(float64(ms%cycle) / float64(cycle))
	}
	return f
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
