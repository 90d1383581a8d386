package renderer

import (
	"math"
	"testing"

	"github.com/jvail/go-interactive-tracer/pkg/core"
)

func constantBuffer(n int, v core.Vec3) []core.Vec3 {
	buf := make([]core.Vec3, n)
	for i := range buf {
		buf[i] = v
	}
	return buf
}

func TestAccumulator_IdenticalFramesConvergeExactly(t *testing.T) {
	acc := NewAccumulator(4, 4)
	w := constantBuffer(16, core.NewVec3(0.3, 0.6, 0.9))

	// The mean of identical samples is the sample, exactly
	for frame := 0; frame < 10; frame++ {
		if err := acc.Add(w); err != nil {
			t.Fatalf("Frame %d: %v", frame, err)
		}
	}

	if acc.SampleIndex() != 10 {
		t.Errorf("Expected sample index 10, got %d", acc.SampleIndex())
	}
	for i, p := range acc.Displayed() {
		if math.Abs(p.X-0.3) > 1e-12 || math.Abs(p.Y-0.6) > 1e-12 || math.Abs(p.Z-0.9) > 1e-12 {
			t.Fatalf("Pixel %d drifted from the input: %v", i, p)
		}
	}
}

func TestAccumulator_RunningMean(t *testing.T) {
	acc := NewAccumulator(1, 1)

	acc.Add(constantBuffer(1, core.NewVec3(1, 0, 0)))
	acc.Add(constantBuffer(1, core.NewVec3(0, 1, 0)))
	acc.Add(constantBuffer(1, core.NewVec3(0, 0, 1)))

	got := acc.Displayed()[0]
	third := 1.0 / 3.0
	if math.Abs(got.X-third) > 1e-12 || math.Abs(got.Y-third) > 1e-12 || math.Abs(got.Z-third) > 1e-12 {
		t.Errorf("Expected arithmetic mean (1/3,1/3,1/3), got %v", got)
	}
}

func TestAccumulator_ResetDiscardsHistory(t *testing.T) {
	acc := NewAccumulator(2, 2)

	acc.Add(constantBuffer(4, core.NewVec3(1, 1, 1)))
	acc.Add(constantBuffer(4, core.NewVec3(1, 1, 1)))
	acc.Reset()

	if acc.SampleIndex() != 0 {
		t.Fatalf("Expected sample index 0 after reset, got %d", acc.SampleIndex())
	}

	// The next frame must come through exactly, with no stale blending
	next := core.NewVec3(0.2, 0.4, 0.8)
	acc.Add(constantBuffer(4, next))

	for i, p := range acc.Displayed() {
		if p != next {
			t.Fatalf("Pixel %d blended with stale history: %v", i, p)
		}
	}
	if acc.SampleIndex() != 1 {
		t.Errorf("Expected sample index 1, got %d", acc.SampleIndex())
	}
}

func TestAccumulator_ResizeResets(t *testing.T) {
	acc := NewAccumulator(2, 2)
	acc.Add(constantBuffer(4, core.NewVec3(1, 1, 1)))

	acc.Resize(3, 3)

	if acc.SampleIndex() != 0 {
		t.Errorf("Resize must reset the sample index, got %d", acc.SampleIndex())
	}
	if len(acc.Displayed()) != 9 {
		t.Errorf("Expected 9 pixels after resize, got %d", len(acc.Displayed()))
	}
}

func TestAccumulator_RejectsMismatchedBuffer(t *testing.T) {
	acc := NewAccumulator(2, 2)

	if err := acc.Add(constantBuffer(5, core.NewVec3(1, 1, 1))); err == nil {
		t.Fatal("Expected error for mismatched buffer length")
	}
	if acc.SampleIndex() != 0 {
		t.Error("Rejected frame must not advance the sample index")
	}
	for i, p := range acc.Displayed() {
		if !p.IsZero() {
			t.Fatalf("Rejected frame partially blended into pixel %d: %v", i, p)
		}
	}
}
