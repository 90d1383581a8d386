package core

// Vec4 represents a 4D vector, used for homogeneous points and packed
// light parameters (direction in XYZ, intensity in W)
type Vec4 struct {
	X, Y, Z, W float64
}

// NewVec4 creates a new Vec4
func NewVec4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// XYZ returns the first three components as a Vec3
func (v Vec4) XYZ() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Point promotes a Vec3 to a homogeneous point with w=1
func Point(v Vec3) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}
}

// Direction promotes a Vec3 to a homogeneous direction with w=0
func Direction(v Vec3) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 0}
}
