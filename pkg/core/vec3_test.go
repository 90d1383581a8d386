package core

import (
	"math"
	"testing"
)

func vec3Near(a, b Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Add(b); got != NewVec3(5, 7, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := b.Subtract(a); got != NewVec3(3, 3, 3) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := a.Multiply(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, 10, 18) {
		t.Errorf("MultiplyVec: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()

	if math.Abs(n.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	// Zero vector normalizes to zero rather than NaN
	zero := NewVec3(0, 0, 0).Normalize()
	if !zero.IsZero() {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incoming Vec3
		normal   Vec3
		expected Vec3
	}{
		{
			name:     "45 degree bounce off ground",
			incoming: NewVec3(1, -1, 0).Normalize(),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:     "head-on reversal",
			incoming: NewVec3(0, 0, -1),
			normal:   NewVec3(0, 0, 1),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "grazing along surface",
			incoming: NewVec3(1, 0, 0),
			normal:   NewVec3(0, 1, 0),
			expected: NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.incoming.Reflect(tt.normal)
			if !vec3Near(got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5)
	got := v.Clamp(0, 1)
	if got != NewVec3(0, 0.5, 1) {
		t.Errorf("Expected (0, 0.5, 1), got %v", got)
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, 6)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp at t=0: got %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp at t=1: got %v", got)
	}
	if got := a.Lerp(b, 0.5); got != NewVec3(1, 2, 3) {
		t.Errorf("Lerp at t=0.5: got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1))

	if got := ray.At(4); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected (0,0,1), got %v", got)
	}
	if ray.Energy != NewVec3(1, 1, 1) {
		t.Errorf("New ray should carry full energy, got %v", ray.Energy)
	}
}
