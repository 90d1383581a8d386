package core

import (
	"math"
	"testing"
)

func TestMat4_IdentityTransforms(t *testing.T) {
	id := Identity()
	p := NewVec3(1, 2, 3)

	if got := id.TransformPoint(p); got != p {
		t.Errorf("Identity point transform: got %v", got)
	}
	if got := id.TransformDirection(p); got != p {
		t.Errorf("Identity direction transform: got %v", got)
	}
	if got := id.Mul(id); got != id {
		t.Errorf("Identity product: got %v", got)
	}
}

func TestMat4_LookAtTranslation(t *testing.T) {
	eye := NewVec3(3, 1, -2)
	m := LookAt(eye, NewVec3(0, 0, 0), NewVec3(0, 1, 0))

	// The camera origin in camera space maps to the eye position
	origin := m.TransformPoint(NewVec3(0, 0, 0))
	if !vec3Near(origin, eye, 1e-12) {
		t.Errorf("Expected eye %v, got %v", eye, origin)
	}
}

func TestMat4_LookAtForward(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	target := NewVec3(0, 0, 0)
	m := LookAt(eye, target, NewVec3(0, 1, 0))

	// Camera space looks down -Z; that direction must map toward the target
	forward := m.TransformDirection(NewVec3(0, 0, -1))
	expected := target.Subtract(eye).Normalize()
	if !vec3Near(forward, expected, 1e-12) {
		t.Errorf("Expected forward %v, got %v", expected, forward)
	}

	// Rotation part preserves length
	if math.Abs(forward.Length()-1.0) > 1e-12 {
		t.Errorf("Rotation should preserve unit length, got %f", forward.Length())
	}
}

func TestMat4_InversePerspectiveCenterRay(t *testing.T) {
	inv := InversePerspective(60, 16.0/9.0, 0.1, 100)

	// The NDC center unprojects straight down the -Z axis
	dir := inv.MulVec4(NewVec4(0, 0, 0, 1)).XYZ().Normalize()
	if !vec3Near(dir, NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected (0,0,-1), got %v", dir)
	}
}

func TestMat4_InversePerspectiveFrustumEdge(t *testing.T) {
	vfov := 90.0
	inv := InversePerspective(vfov, 1.0, 0.1, 100)

	// At 90 degrees vertical FOV the top edge of the frustum makes a 45
	// degree angle with the view axis
	dir := inv.MulVec4(NewVec4(0, 1, 0, 1)).XYZ().Normalize()
	angle := math.Acos(dir.Dot(NewVec3(0, 0, -1))) * 180 / math.Pi
	if math.Abs(angle-45) > 1e-9 {
		t.Errorf("Expected 45 degree half-angle, got %f", angle)
	}
}
