package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/countdown/internal/model"
	"github.com/manav03panchal/countdown/internal/timer"
)

// minCells keeps tiny rings recognisable.
const minCells = 8

const (
	cellFilled = "●"
	cellEmpty  = "·"
)

// RingView draws one unit as a circle of cells. Cells are lit clockwise
// from the top.
type RingView struct {
	Unit     model.Unit
	Ring     timer.Ring
	Value    string
	Fraction float64
}

// Cells returns the number of cells on the circle, one per unit of
// circumference.
func (rv RingView) Cells() int {
	n := int(math.Round(rv.Ring.Circumference))
	if n < minCells {
		n = minCells
	}
	return n
}

// Filled returns how many cells are lit, following the dash offset.
func (rv RingView) Filled() int {
	if rv.Ring.Circumference <= 0 {
		return 0
	}
	n := rv.Cells()
	lit := int(math.Round(rv.Ring.Drawn(rv.Fraction) / rv.Ring.Circumference * float64(n)))
	if lit > n {
		lit = n
	}
	return lit
}

// size returns the grid dimensions. Terminal cells are about twice as tall
// as wide, so columns are stretched by two.
func (rv RingView) size() (w, h, r int) {
	r = int(math.Ceil(rv.Ring.Radius))
	if r < 1 {
		r = 1
	}
	return 4*r + 3, 2*r + 1, r
}

// View renders the ring with its value in the middle and the unit name
// below.
func (rv RingView) View() string {
	w, h, r := rv.size()
	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	cx, cy := float64(w-1)/2, float64(h-1)/2
	n := rv.Cells()
	filled := rv.Filled()
	place := func(i int, cell string) {
		theta := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		x := int(math.Round(cx + 2*float64(r)*math.Cos(theta)))
		y := int(math.Round(cy + float64(r)*math.Sin(theta)))
		x = min(max(x, 0), w-1)
		y = min(max(y, 0), h-1)
		grid[y][x] = cell
	}
	for i := 0; i < n; i++ {
		place(i, StyleRingEmpty.Render(cellEmpty))
	}
	for i := 0; i < filled; i++ {
		place(i, StyleRingFilled.Render(cellFilled))
	}

	value := []rune(rv.Value)
	start := int(cx) - len(value)/2
	for i, ch := range value {
		if x := start + i; x > 0 && x < w-1 {
			grid[int(cy)][x] = StyleValue.Render(string(ch))
		}
	}

	rows := make([]string, 0, h+1)
	for _, row := range grid {
		rows = append(rows, strings.Join(row, ""))
	}
	rows = append(rows, lipgloss.PlaceHorizontal(w, lipgloss.Center, StyleUnitName.Render(rv.Unit.String())))
	return strings.Join(rows, "\n")
}
