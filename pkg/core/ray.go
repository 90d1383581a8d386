package core

// Ray represents a ray with an origin, direction and carried energy.
// Energy starts at (1,1,1) and is attenuated component-wise on each
// bounce; it never increases in any channel.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Energy    Vec3
}

// NewRay creates a new ray with full energy
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, Energy: NewVec3(1, 1, 1)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
