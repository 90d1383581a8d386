package geometry

import (
	"math"

	"github.com/jvail/go-interactive-tracer/pkg/core"
)

// RayHit records the closest intersection found so far. A Distance of
// +Inf means no hit has been found yet.
type RayHit struct {
	Position core.Vec3
	Distance float64
	Normal   core.Vec3
	Albedo   core.Vec3
	Specular core.Vec3
}

// NewRayHit returns the no-hit sentinel record
func NewRayHit() RayHit {
	return RayHit{Distance: math.Inf(1)}
}

// Found reports whether any intersection has been recorded
func (h RayHit) Found() bool {
	return !math.IsInf(h.Distance, 1)
}

// accepts reports whether a candidate t improves on the stored hit.
// Strict inequalities: ties keep the earlier hit, and NaN fails both
// comparisons so a degenerate candidate can never poison the record.
func (h RayHit) accepts(t float64) bool {
	return t > 0 && t < h.Distance
}
