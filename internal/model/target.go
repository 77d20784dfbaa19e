package model

import "time"

// TargetSpec is the resolved countdown target for one session.
type TargetSpec struct {
	// Target is the primary deadline.
	Target time.Time `json:"target"`
	// LiveStart marks when count-up begins. Zero when no live phase is enabled.
	LiveStart time.Time `json:"live_start,omitempty"`
	// TotalDays is the days-ring denominator, frozen at resolution time.
	TotalDays int `json:"total_days"`
}

// HasLiveStart reports whether a live phase follows the target.
func (s TargetSpec) HasLiveStart() bool {
	return !s.LiveStart.IsZero()
}

// HasWaiting reports whether a waiting span separates target and live start.
func (s TargetSpec) HasWaiting() bool {
	return s.HasLiveStart() && s.LiveStart.After(s.Target)
}
