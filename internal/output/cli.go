package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/countdown/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red
	colorSuccess   = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleUnit = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	styleValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleLabel = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// barWidth is the progress bar length used by PrintFrame.
const barWidth = 24

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// PrintFrame prints a frame as a caption followed by one row per unit.
func (c *CLIFormatter) PrintFrame(f model.Frame) {
	c.Println(c.render(styleLabel, f.Label()))
	c.Println()
	for _, u := range model.Units {
		name := fmt.Sprintf("%-8s", strings.ToUpper(u.String()))
		fraction := f.Fractions.Get(u)
		c.Printf("%s%s  [%s] %3d%%\n",
			c.render(styleUnit, name),
			c.render(styleValue, f.Value(u)),
			c.render(styleMuted, ProgressBar(fraction*100, barWidth)),
			int(fraction*100),
		)
	}
	if f.Phase.Terminal() {
		c.Println()
		c.Success("Countdown finished.")
	}
}

// PrintFramePlain prints a frame as a single uncolored line.
func (c *CLIFormatter) PrintFramePlain(f model.Frame) {
	c.Printf("%s %s\n", f.Phase, f.Breakdown)
}

// PrintTarget prints the resolved target.
func (c *CLIFormatter) PrintTarget(info TargetInfo) {
	c.Printf("Target:     %s\n", c.render(styleValue, FormatTime(info.Spec.Target)))
	c.Printf("            %s\n", c.render(styleMuted, info.Until))
	if info.Spec.HasLiveStart() {
		c.Printf("Live from:  %s\n", FormatTime(info.Spec.LiveStart))
	}
	c.Printf("Days ring:  %d\n", info.Spec.TotalDays)
	if info.Persistent {
		c.Printf("Source:     %s (key %s)\n", info.Source, info.Key)
	} else {
		c.Printf("Source:     %s\n", info.Source)
		c.Muted("Target persistence is off; a new target is created every run.")
	}
}

// PrintReset prints the result of a target reset.
func (c *CLIFormatter) PrintReset(key string, existed bool) {
	if existed {
		c.Success(fmt.Sprintf("Removed stored target %q.", key))
		return
	}
	c.Muted(fmt.Sprintf("No stored target under %q.", key))
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}
