package core

import "math"

// Mat4 is a row-major 4x4 transform matrix
type Mat4 struct {
	M [4][4]float64
}

// Identity returns the 4x4 identity matrix
func Identity() Mat4 {
	return Mat4{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Mul returns the matrix product a*b
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a.M[i][k] * b.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// MulVec4 applies the matrix to a homogeneous vector
func (a Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: a.M[0][0]*v.X + a.M[0][1]*v.Y + a.M[0][2]*v.Z + a.M[0][3]*v.W,
		Y: a.M[1][0]*v.X + a.M[1][1]*v.Y + a.M[1][2]*v.Z + a.M[1][3]*v.W,
		Z: a.M[2][0]*v.X + a.M[2][1]*v.Y + a.M[2][2]*v.Z + a.M[2][3]*v.W,
		W: a.M[3][0]*v.X + a.M[3][1]*v.Y + a.M[3][2]*v.Z + a.M[3][3]*v.W,
	}
}

// TransformPoint applies the matrix to a point (w=1). The matrix is
// assumed affine, so no perspective divide is performed.
func (a Mat4) TransformPoint(v Vec3) Vec3 {
	return a.MulVec4(Point(v)).XYZ()
}

// TransformDirection applies only the rotation part of the matrix to a
// direction vector (w=0), ignoring translation
func (a Mat4) TransformDirection(v Vec3) Vec3 {
	return a.MulVec4(Direction(v)).XYZ()
}

// LookAt builds a camera-to-world transform for a camera at eye looking
// toward target. Camera space looks down -Z with +Y up.
func LookAt(eye, target, up Vec3) Mat4 {
	w := eye.Subtract(target).Normalize() // back
	u := up.Cross(w).Normalize()          // right
	v := w.Cross(u)                       // true up

	return Mat4{M: [4][4]float64{
		{u.X, v.X, w.X, eye.X},
		{u.Y, v.Y, w.Y, eye.Y},
		{u.Z, v.Z, w.Z, eye.Z},
		{0, 0, 0, 1},
	}}
}

// InversePerspective builds the inverse of a right-handed perspective
// projection directly from its parameters. Applying it to an NDC point
// (u, v, 0, 1) yields a camera-space direction spanning the view frustum.
func InversePerspective(vfovDegrees, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(vfovDegrees*math.Pi/180/2)
	return Mat4{M: [4][4]float64{
		{aspect / f, 0, 0, 0},
		{0, 1 / f, 0, 0},
		{0, 0, 0, -1},
		{0, 0, (near - far) / (2 * far * near), (far + near) / (2 * far * near)},
	}}
}
