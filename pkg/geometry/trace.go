package geometry

import "github.com/jvail/go-interactive-tracer/pkg/core"

// Trace finds the closest intersection of the ray with the ground plane
// and a list of spheres. Only the minimum distance survives, so the
// result is independent of sphere iteration order.
func Trace(ray core.Ray, spheres []Sphere) RayHit {
	bestHit := NewRayHit()
	IntersectGroundPlane(ray, &bestHit)
	for _, sphere := range spheres {
		IntersectSphere(ray, &bestHit, sphere)
	}
	return bestHit
}
