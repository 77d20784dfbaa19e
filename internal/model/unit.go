package model

import (
	"fmt"
	"strings"
	"time"
)

// Unit identifies one ring of the countdown display.
type Unit int

const (
	UnitDays Unit = iota
	UnitHours
	UnitMinutes
	UnitSeconds
)

// NumUnits is the number of display units.
const NumUnits = 4

// Day is the length of a countdown day. Days are fixed 24h spans, not calendar days.
const Day = 24 * time.Hour

// Units lists every unit, largest first.
var Units = [NumUnits]Unit{UnitDays, UnitHours, UnitMinutes, UnitSeconds}

// String returns the unit identifier used by sinks and configuration.
func (u Unit) String() string {
	switch u {
	case UnitDays:
		return "days"
	case UnitHours:
		return "hours"
	case UnitMinutes:
		return "minutes"
	case UnitSeconds:
		return "seconds"
	default:
		return "unknown"
	}
}

// Length returns the duration of one unit.
func (u Unit) Length() time.Duration {
	switch u {
	case UnitDays:
		return Day
	case UnitHours:
		return time.Hour
	case UnitMinutes:
		return time.Minute
	default:
		return time.Second
	}
}

// Modulus returns how many of this unit fit in the next larger one.
// Days have no modulus and return 0.
func (u Unit) Modulus() int {
	switch u {
	case UnitHours:
		return 24
	case UnitMinutes, UnitSeconds:
		return 60
	default:
		return 0
	}
}

// ParseUnit parses a unit identifier such as "days" or "h".
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "days", "day", "d":
		return UnitDays, nil
	case "hours", "hour", "h":
		return UnitHours, nil
	case "minutes", "minute", "min", "m":
		return UnitMinutes, nil
	case "seconds", "second", "sec", "s":
		return UnitSeconds, nil
	}
	return 0, fmt.Errorf("unknown unit %q", s)
}

// UnitBreakdown is a duration split into days, hours, minutes and seconds.
type UnitBreakdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Value returns the component for u.
func (b UnitBreakdown) Value(u Unit) int {
	switch u {
	case UnitDays:
		return b.Days
	case UnitHours:
		return b.Hours
	case UnitMinutes:
		return b.Minutes
	case UnitSeconds:
		return b.Seconds
	}
	return 0
}

// TotalSeconds reassembles the breakdown into whole seconds.
func (b UnitBreakdown) TotalSeconds() int64 {
	return int64(b.Days)*86400 + int64(b.Hours)*3600 + int64(b.Minutes)*60 + int64(b.Seconds)
}

// IsZero reports whether every component is zero.
func (b UnitBreakdown) IsZero() bool {
	return b == UnitBreakdown{}
}

// String formats the breakdown as DD:HH:MM:SS.
func (b UnitBreakdown) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", PadValue(b.Days), PadValue(b.Hours), PadValue(b.Minutes), PadValue(b.Seconds))
}

// PadValue zero-pads v to at least two digits.
func PadValue(v int) string {
	return fmt.Sprintf("%02d", v)
}

// Fractions holds one ring fill value in [0,1] per unit.
type Fractions [NumUnits]float64

// Get returns the fraction for u.
func (f Fractions) Get(u Unit) float64 {
	if u < 0 || int(u) >= NumUnits {
		return 0
	}
	return f[u]
}

// ParseUnits parses a comma separated unit list such as "days,hours".
// Duplicates are dropped and the result is ordered largest first.
func ParseUnits(s string) ([]Unit, error) {
	var seen [NumUnits]bool
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		u, err := ParseUnit(part)
		if err != nil {
			return nil, err
		}
		seen[u] = true
	}
	var units []Unit
	for _, u := range Units {
		if seen[u] {
			units = append(units, u)
		}
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("no units in %q", s)
	}
	return units, nil
}
