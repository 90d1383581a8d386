package geometry

import "github.com/jvail/go-interactive-tracer/pkg/core"

// Ground plane surface response: a flat gray with a faint specular tint
var (
	groundAlbedo   = core.NewVec3All(0.8)
	groundSpecular = core.NewVec3All(0.03)
)

// IntersectGroundPlane tests the ray against the infinite plane y=0 and
// updates bestHit if this intersection is closer than the stored one.
func IntersectGroundPlane(ray core.Ray, bestHit *RayHit) {
	// For a ray parallel to the plane t comes out as +/-Inf or NaN,
	// all of which fail the acceptance test
	t := -ray.Origin.Y / ray.Direction.Y
	if !bestHit.accepts(t) {
		return
	}

	bestHit.Distance = t
	bestHit.Position = ray.At(t)
	bestHit.Normal = core.NewVec3(0, 1, 0)
	bestHit.Albedo = groundAlbedo
	bestHit.Specular = groundSpecular
}
