package renderer

import (
	"fmt"

	"github.com/jvail/go-interactive-tracer/pkg/core"
)

// Accumulator maintains the running mean of per-pixel color across the
// frames rendered since the last invalidation. The displayed buffer at
// sample index N equals the arithmetic mean of the N+1 working buffers
// accumulated since the last reset.
type Accumulator struct {
	sampleIndex int
	displayed   []core.Vec3
}

// NewAccumulator creates an accumulator for the given output dimensions
func NewAccumulator(width, height int) *Accumulator {
	return &Accumulator{
		displayed: make([]core.Vec3, width*height),
	}
}

// SampleIndex returns the number of frames accumulated since the last
// reset
func (a *Accumulator) SampleIndex() int {
	return a.sampleIndex
}

// Displayed returns the accumulated buffer. Callers must not mutate it.
func (a *Accumulator) Displayed() []core.Vec3 {
	return a.displayed
}

// Add blends a completed working buffer into the displayed buffer with
// weight 1/(sampleIndex+1) and increments the sample index. A
// length-mismatched buffer is rejected whole; nothing is partially
// blended.
func (a *Accumulator) Add(working []core.Vec3) error {
	if len(working) != len(a.displayed) {
		return fmt.Errorf("working buffer length %d does not match accumulator %d",
			len(working), len(a.displayed))
	}

	if a.sampleIndex == 0 {
		// First frame after a reset overwrites outright, so stale
		// history can never bleed through
		copy(a.displayed, working)
	} else {
		// Incremental form of (displayed*n + working)/(n+1): a frame
		// equal to the current mean leaves the mean bit-for-bit
		// unchanged
		invCount := 1.0 / float64(a.sampleIndex+1)
		for i := range a.displayed {
			delta := working[i].Subtract(a.displayed[i])
			a.displayed[i] = a.displayed[i].Add(delta.Multiply(invCount))
		}
	}
	a.sampleIndex++
	return nil
}

// Reset restarts convergence. The stale history carries weight zero on
// the next Add, so the next frame fully overwrites the buffer.
func (a *Accumulator) Reset() {
	a.sampleIndex = 0
}

// Resize reallocates the buffer for new output dimensions and resets the
// sample index in the same step.
func (a *Accumulator) Resize(width, height int) {
	a.displayed = make([]core.Vec3, width*height)
	a.sampleIndex = 0
}
