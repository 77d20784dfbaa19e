package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitString(t *testing.T) {
	assert.Equal(t, "days", UnitDays.String())
	assert.Equal(t, "hours", UnitHours.String())
	assert.Equal(t, "minutes", UnitMinutes.String())
	assert.Equal(t, "seconds", UnitSeconds.String())
	assert.Equal(t, "unknown", Unit(9).String())
}

func TestUnitModulus(t *testing.T) {
	assert.Equal(t, 0, UnitDays.Modulus())
	assert.Equal(t, 24, UnitHours.Modulus())
	assert.Equal(t, 60, UnitMinutes.Modulus())
	assert.Equal(t, 60, UnitSeconds.Modulus())
	assert.Equal(t, Day, UnitDays.Length())
	assert.Equal(t, time.Second, UnitSeconds.Length())
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input string
		want  Unit
	}{
		{"days", UnitDays},
		{"D", UnitDays},
		{" hours ", UnitHours},
		{"min", UnitMinutes},
		{"s", UnitSeconds},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseUnit("weeks")
	assert.Error(t, err)
}

func TestParseUnits(t *testing.T) {
	units, err := ParseUnits("seconds,days,seconds")
	require.NoError(t, err)
	assert.Equal(t, []Unit{UnitDays, UnitSeconds}, units)

	_, err = ParseUnits(" , ")
	assert.Error(t, err)

	_, err = ParseUnits("days,fortnights")
	assert.Error(t, err)
}

func TestUnitBreakdown(t *testing.T) {
	b := UnitBreakdown{Days: 75, Hours: 23, Minutes: 59, Seconds: 5}
	assert.Equal(t, 75, b.Value(UnitDays))
	assert.Equal(t, 5, b.Value(UnitSeconds))
	assert.Equal(t, int64(75*86400+23*3600+59*60+5), b.TotalSeconds())
	assert.Equal(t, "75:23:59:05", b.String())
	assert.False(t, b.IsZero())
	assert.True(t, UnitBreakdown{}.IsZero())
}

func TestPadValue(t *testing.T) {
	assert.Equal(t, "00", PadValue(0))
	assert.Equal(t, "07", PadValue(7))
	assert.Equal(t, "123", PadValue(123))
}

func TestFractionsGet(t *testing.T) {
	f := Fractions{0.1, 0.2, 0.3, 0.4}
	assert.Equal(t, 0.3, f.Get(UnitMinutes))
	assert.Equal(t, 0.0, f.Get(Unit(-1)))
	assert.Equal(t, 0.0, f.Get(Unit(NumUnits)))
}

func TestPhaseText(t *testing.T) {
	for _, p := range []Phase{PhaseCounting, PhaseWaiting, PhaseLive, PhaseFinished} {
		text, err := p.MarshalText()
		require.NoError(t, err)

		var got Phase
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, p, got)
	}

	var p Phase
	assert.Error(t, p.UnmarshalText([]byte("paused")))
	assert.True(t, PhaseFinished.Terminal())
	assert.False(t, PhaseLive.Terminal())
}

func TestFrameLabel(t *testing.T) {
	target := time.Date(2026, 5, 25, 8, 30, 0, 0, time.Local)
	f := Frame{Phase: PhaseCounting, Target: target, Breakdown: UnitBreakdown{Hours: 3}}
	assert.Equal(t, "Target: 2026-05-25 08:30:00", f.Label())
	assert.Equal(t, "03", f.Value(UnitHours))

	f.Phase = PhaseWaiting
	f.LiveStart = target.Add(Day)
	assert.Equal(t, "Live at: 2026-05-26 08:30:00", f.Label())

	f.Phase = PhaseLive
	assert.Equal(t, "Live since: 2026-05-26 08:30:00", f.Label())

	f.Phase = PhaseFinished
	assert.Equal(t, "Target reached: 2026-05-25 08:30:00", f.Label())
}

func TestTargetSpec(t *testing.T) {
	target := time.Date(2026, 5, 25, 0, 0, 0, 0, time.UTC)

	spec := TargetSpec{Target: target}
	assert.False(t, spec.HasLiveStart())
	assert.False(t, spec.HasWaiting())

	spec.LiveStart = target
	assert.True(t, spec.HasLiveStart())
	assert.False(t, spec.HasWaiting())

	spec.LiveStart = target.Add(Day)
	assert.True(t, spec.HasWaiting())
}
