// Package timer provides the countdown engine and its terminal display.
package timer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/manav03panchal/countdown/internal/model"
)

// Styles for countdown display.
var (
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")) // Purple

	unitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")) // Green

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")) // Gray

	statusStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6B7280")) // Gray

	burstStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F472B6")) // Pink
)

// unitRow is the buffered state of one unit line.
type unitRow struct {
	value    string
	fraction float64
	set      bool
}

// CountdownDisplay is a line-oriented Sink that redraws the whole frame on
// every flush. It is used when the full-screen interface is unavailable.
type CountdownDisplay struct {
	Writer   io.Writer
	UseColor bool
	Units    []model.Unit

	mu       sync.Mutex
	geometry Geometry
	label    string
	rows     map[model.Unit]*unitRow
	burst    burstState
	drawn    bool
}

type burstState int

const (
	burstOff burstState = iota
	burstOn
	burstFading
)

// NewCountdownDisplay creates a display for units, with bar lengths taken
// from geometry. Units not listed report ErrElementMissing.
func NewCountdownDisplay(w io.Writer, geometry Geometry, units ...model.Unit) *CountdownDisplay {
	if w == nil {
		w = os.Stdout
	}
	if len(units) == 0 {
		units = model.Units[:]
	}
	rows := make(map[model.Unit]*unitRow, len(units))
	for _, u := range units {
		rows[u] = &unitRow{}
	}
	return &CountdownDisplay{
		Writer:   w,
		UseColor: true,
		Units:    units,
		geometry: geometry,
		rows:     rows,
	}
}

// SetLabel implements Sink.
func (cd *CountdownDisplay) SetLabel(label string) error {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	cd.label = label
	return nil
}

// SetUnit implements Sink.
func (cd *CountdownDisplay) SetUnit(unit model.Unit, value string, fraction float64) error {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	row, ok := cd.rows[unit]
	if !ok {
		return fmt.Errorf("%w: %s", ErrElementMissing, unit)
	}
	row.value = value
	row.fraction = clamp(fraction)
	row.set = true
	return nil
}

// Play implements celebrate.Effect.
func (cd *CountdownDisplay) Play() error {
	cd.setBurst(burstOn)
	return nil
}

// Fade implements celebrate.Effect.
func (cd *CountdownDisplay) Fade() error {
	cd.setBurst(burstFading)
	return nil
}

// Clear implements celebrate.Effect.
func (cd *CountdownDisplay) Clear() error {
	cd.setBurst(burstOff)
	return nil
}

func (cd *CountdownDisplay) setBurst(s burstState) {
	cd.mu.Lock()
	cd.burst = s
	cd.mu.Unlock()
}

// Flush implements Flusher. The first flush clears the screen; later ones
// redraw in place.
func (cd *CountdownDisplay) Flush() error {
	cd.mu.Lock()
	out := cd.render()
	first := !cd.drawn
	cd.drawn = true
	cd.mu.Unlock()

	if first {
		cd.ClearScreen()
	} else {
		cd.MoveCursorHome()
	}
	_, err := io.WriteString(cd.Writer, out)
	return err
}

// Render returns the current frame as text without writing it.
func (cd *CountdownDisplay) Render() string {
	cd.mu.Lock()
	defer cd.mu.Unlock()
	return cd.render()
}

func (cd *CountdownDisplay) render() string {
	var b strings.Builder

	switch cd.burst {
	case burstOn:
		b.WriteString(cd.style(burstStyle, "* . * BOOM * . *"))
	case burstFading:
		b.WriteString(cd.style(progressStyle, ".  .  .  .  ."))
	default:
		// The caption is hidden while the burst plays.
		b.WriteString(cd.style(statusStyle, cd.label))
	}
	b.WriteString("\033[K\n\n")

	for _, u := range cd.Units {
		row := cd.rows[u]
		if row == nil || !row.set {
			continue
		}
		name := fmt.Sprintf("%-8s", strings.ToUpper(u.String()))
		b.WriteString(cd.style(unitStyle, name))
		b.WriteString(cd.style(timerStyle, row.value))
		b.WriteString("  ")
		b.WriteString(cd.style(progressStyle, cd.renderProgressBar(u, row.fraction)))
		b.WriteString("\033[K\n")
	}
	return b.String()
}

func (cd *CountdownDisplay) style(s lipgloss.Style, text string) string {
	if !cd.UseColor {
		return text
	}
	return s.Render(text)
}

// renderProgressBar draws a unit's ring unrolled into a bar whose length is
// the ring circumference, limited by the terminal width.
func (cd *CountdownDisplay) renderProgressBar(u model.Unit, fraction float64) string {
	ring, ok := cd.geometry.Ring(u)
	width := 30
	if ok && ring.Circumference > 0 {
		width = int(ring.Circumference + 0.5)
	}
	if limit := cd.maxBarWidth(); width > limit {
		width = limit
	}

	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %3d%%", bar, int(fraction*100))
}

// maxBarWidth leaves room for the unit name, value and percentage.
func (cd *CountdownDisplay) maxBarWidth() int {
	const reserved = 8 + 4 + 2 + 7
	if f, ok := cd.Writer.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > reserved+4 {
			return w - reserved
		}
	}
	return 60
}

// ClearScreen clears the terminal screen.
func (cd *CountdownDisplay) ClearScreen() {
	fmt.Fprint(cd.Writer, "\033[H\033[2J")
}

// MoveCursorHome moves cursor to home position.
func (cd *CountdownDisplay) MoveCursorHome() {
	fmt.Fprint(cd.Writer, "\033[H")
}
