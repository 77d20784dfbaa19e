package timer

import (
	"errors"

	"github.com/manav03panchal/countdown/internal/model"
)

// ErrElementMissing is returned by a Sink that has no element for a unit.
var ErrElementMissing = errors.New("display element missing")

// Sink applies computed frames to a display.
type Sink interface {
	// SetLabel updates the target/phase caption.
	SetLabel(label string) error
	// SetUnit updates one unit's readout and ring fill.
	SetUnit(unit model.Unit, value string, fraction float64) error
}

// Flusher is implemented by sinks that buffer a frame and draw it at once.
type Flusher interface {
	Flush() error
}
