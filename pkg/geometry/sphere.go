package geometry

import (
	"math"

	"github.com/jvail/go-interactive-tracer/pkg/core"
)

// Sphere is a scene primitive. Spheres are created in bulk at scene
// setup time and are immutable for the lifetime of a scene generation.
type Sphere struct {
	Position core.Vec3
	Radius   float64
	Albedo   core.Vec3
	Specular core.Vec3
}

// NewSphere creates a new sphere
func NewSphere(position core.Vec3, radius float64, albedo, specular core.Vec3) Sphere {
	return Sphere{
		Position: position,
		Radius:   radius,
		Albedo:   albedo,
		Specular: specular,
	}
}

// IntersectSphere tests the ray against a sphere and updates bestHit if
// this intersection is closer than the stored one. The quadratic assumes
// a unit-length ray direction.
func IntersectSphere(ray core.Ray, bestHit *RayHit, sphere Sphere) {
	d := ray.Origin.Subtract(sphere.Position)
	p1 := -ray.Direction.Dot(d)
	discriminant := p1*p1 - d.Dot(d) + sphere.Radius*sphere.Radius
	if discriminant < 0 {
		return
	}

	// Prefer the near intersection when it lies in front of the ray
	// origin, otherwise fall back to the far one (ray starts inside)
	p2 := math.Sqrt(discriminant)
	t := p1 - p2
	if t <= 0 {
		t = p1 + p2
	}
	if !bestHit.accepts(t) {
		return
	}

	bestHit.Distance = t
	bestHit.Position = ray.At(t)
	bestHit.Normal = bestHit.Position.Subtract(sphere.Position).Normalize()
	bestHit.Albedo = sphere.Albedo
	bestHit.Specular = sphere.Specular
}
