package tui

import (
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Burst particle counts.
const (
	particleCount = 44
	sparkRatio    = 0.28
)

type particle struct {
	x, y  float64 // position in [0,1)
	spark bool
	color lipgloss.Color
}

// Confetti is a fixed scatter of particles drawn while the burst plays.
type Confetti struct {
	particles []particle
}

// NewConfetti scatters particles using seed.
func NewConfetti(seed uint64) *Confetti {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ps := make([]particle, particleCount)
	for i := range ps {
		ps[i] = particle{
			x:     rng.Float64(),
			y:     rng.Float64(),
			spark: rng.Float64() < sparkRatio,
			color: confettiColors[rng.IntN(len(confettiColors))],
		}
	}
	return &Confetti{particles: ps}
}

// Len returns the number of particles.
func (c *Confetti) Len() int {
	return len(c.particles)
}

// View draws the particles into a width x height field. While fading only
// the sparks remain, dimmed.
func (c *Confetti) View(width, height int, fading bool) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	grid := make([][]string, height)
	for y := range grid {
		grid[y] = make([]string, width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	for _, p := range c.particles {
		if fading && !p.spark {
			continue
		}
		x := int(p.x * float64(width))
		y := int(p.y * float64(height))
		glyph := "•"
		if p.spark {
			glyph = "✦"
		}
		style := lipgloss.NewStyle().Foreground(p.color)
		if fading {
			glyph = "·"
			style = StyleSubtitle
		}
		grid[y][x] = style.Render(glyph)
	}

	rows := make([]string, height)
	for y, row := range grid {
		rows[y] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}
