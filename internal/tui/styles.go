// Package tui provides the full-screen countdown view.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the countdown view.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorActive    = lipgloss.Color("#3B82F6") // Blue
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
)

// confettiColors tint burst particles.
var confettiColors = []lipgloss.Color{
	"#F472B6", // Pink
	"#FBBF24", // Amber
	"#34D399", // Emerald
	"#60A5FA", // Blue
	"#A78BFA", // Violet
	"#F87171", // Red
}

// Base styles for the view.
var (
	// StyleTitle is used for the header.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleLabel is used for the target caption.
	StyleLabel = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted)

	// StyleValue is used for the number inside a ring.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	// StyleUnitName is used below each ring.
	StyleUnitName = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// StyleRingFilled is used for lit ring cells.
	StyleRingFilled = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	// StyleRingEmpty is used for unlit ring cells.
	StyleRingEmpty = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// StylePhase is used for the phase badge.
	StylePhase = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// StyleSuccess is used once the target is reached.
	StyleSuccess = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	// StyleHelpKey is used for keyboard shortcut keys.
	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	// StyleHelpDesc is used for keyboard shortcut descriptions.
	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleRingBox pads each ring.
	StyleRingBox = lipgloss.NewStyle().
			Padding(0, 1)
)

// HelpBar renders the keyboard shortcuts.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"q", "quit"},
		{"ctrl+c", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
