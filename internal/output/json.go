package output

import (
	"time"

	"github.com/manav03panchal/countdown/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// FrameOutput represents one countdown frame in JSON.
type FrameOutput struct {
	Phase        string             `json:"phase"`
	At           string             `json:"at"`
	Target       string             `json:"target"`
	LiveStart    string             `json:"live_start,omitempty"`
	Label        string             `json:"label"`
	Display      string             `json:"display"`
	TotalSeconds int64              `json:"total_seconds"`
	Values       map[string]int     `json:"values"`
	Fractions    map[string]float64 `json:"fractions"`
	Finished     bool               `json:"finished"`
}

// NewFrameOutput creates a FrameOutput from a Frame.
func NewFrameOutput(f model.Frame) *FrameOutput {
	out := &FrameOutput{
		Phase:        f.Phase.String(),
		At:           f.At.Format(time.RFC3339Nano),
		Target:       f.Target.Format(time.RFC3339Nano),
		Label:        f.Label(),
		Display:      f.Breakdown.String(),
		TotalSeconds: f.Breakdown.TotalSeconds(),
		Values:       make(map[string]int, model.NumUnits),
		Fractions:    make(map[string]float64, model.NumUnits),
		Finished:     f.Phase.Terminal(),
	}
	if !f.LiveStart.IsZero() {
		out.LiveStart = f.LiveStart.Format(time.RFC3339Nano)
	}
	for _, u := range model.Units {
		out.Values[u.String()] = f.Breakdown.Value(u)
		out.Fractions[u.String()] = f.Fractions.Get(u)
	}
	return out
}

// TargetOutput represents the resolved target in JSON.
type TargetOutput struct {
	Target     string `json:"target"`
	LiveStart  string `json:"live_start,omitempty"`
	TotalDays  int    `json:"total_days"`
	Source     string `json:"source"`
	Key        string `json:"key,omitempty"`
	Persistent bool   `json:"persistent"`
	Until      string `json:"until"`
}

// TargetInfo is everything the target command reports.
type TargetInfo struct {
	Spec       model.TargetSpec
	Source     string
	Key        string
	Persistent bool
	Until      string
}

// NewTargetOutput creates a TargetOutput from TargetInfo.
func NewTargetOutput(info TargetInfo) *TargetOutput {
	out := &TargetOutput{
		Target:     info.Spec.Target.Format(time.RFC3339Nano),
		TotalDays:  info.Spec.TotalDays,
		Source:     info.Source,
		Persistent: info.Persistent,
		Until:      info.Until,
	}
	if info.Persistent {
		out.Key = info.Key
	}
	if info.Spec.HasLiveStart() {
		out.LiveStart = info.Spec.LiveStart.Format(time.RFC3339Nano)
	}
	return out
}

// ResetResponse represents the target reset output in JSON.
type ResetResponse struct {
	Status  string `json:"status"`
	Key     string `json:"key"`
	Existed bool   `json:"existed"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintFrame outputs a frame in JSON format.
func (j *JSONFormatter) PrintFrame(f model.Frame) error {
	return j.JSON(NewFrameOutput(f))
}

// PrintTarget outputs the resolved target in JSON format.
func (j *JSONFormatter) PrintTarget(info TargetInfo) error {
	return j.JSON(NewTargetOutput(info))
}

// PrintReset outputs the result of a target reset.
func (j *JSONFormatter) PrintReset(key string, existed bool) error {
	return j.JSON(ResetResponse{Status: "reset", Key: key, Existed: existed})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     status,
		Error:      errMsg,
		Message:    message,
		Suggestion: suggestion,
	})
}
