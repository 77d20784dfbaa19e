package timer

import (
	"math"

	"github.com/manav03panchal/countdown/internal/model"
)

// Ring is the cached geometry of one circular progress indicator.
type Ring struct {
	Radius        float64
	Circumference float64
}

// NewRing computes the geometry for a ring of radius r.
func NewRing(r float64) Ring {
	if r < 0 {
		r = 0
	}
	return Ring{Radius: r, Circumference: 2 * math.Pi * r}
}

// DashOffset returns the stroke offset that leaves fraction of the ring drawn.
func (r Ring) DashOffset(fraction float64) float64 {
	return r.Circumference * (1 - clamp(fraction))
}

// Drawn returns the length of the ring drawn at fraction.
func (r Ring) Drawn(fraction float64) float64 {
	return r.Circumference - r.DashOffset(fraction)
}

// Geometry maps each displayed unit to its ring. Built once at setup.
type Geometry map[model.Unit]Ring

// NewGeometry builds a Geometry from per-unit radii.
func NewGeometry(radii map[model.Unit]float64) Geometry {
	g := make(Geometry, len(radii))
	for u, r := range radii {
		g[u] = NewRing(r)
	}
	return g
}

// UniformGeometry gives every unit in units the same radius.
func UniformGeometry(radius float64, units ...model.Unit) Geometry {
	if len(units) == 0 {
		units = model.Units[:]
	}
	radii := make(map[model.Unit]float64, len(units))
	for _, u := range units {
		radii[u] = radius
	}
	return NewGeometry(radii)
}

// Ring returns the geometry for u.
func (g Geometry) Ring(u model.Unit) (Ring, bool) {
	r, ok := g[u]
	return r, ok
}
