package geometry

import (
	"math"
	"testing"

	"github.com/jvail/go-interactive-tracer/pkg/core"
)

func testSphere() Sphere {
	return NewSphere(core.NewVec3(0, 0, 0), 1.0,
		core.NewVec3(0.5, 0.5, 0.5), core.NewVec3(0.2, 0.2, 0.2))
}

func TestIntersectSphere_FrontHit(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit := NewRayHit()

	IntersectSphere(ray, &hit, testSphere())

	if !hit.Found() {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Distance-4.0) > 1e-12 {
		t.Errorf("Expected distance 4, got %f", hit.Distance)
	}
	if hit.Normal != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Albedo != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Albedo not copied from sphere, got %v", hit.Albedo)
	}
	if hit.Specular != core.NewVec3(0.2, 0.2, 0.2) {
		t.Errorf("Specular not copied from sphere, got %v", hit.Specular)
	}
}

func TestIntersectSphere_Miss(t *testing.T) {
	// Closest approach exceeds the radius
	ray := core.NewRay(core.NewVec3(2, 2, 5), core.NewVec3(0, 0, -1))
	hit := NewRayHit()

	IntersectSphere(ray, &hit, testSphere())

	if hit.Found() {
		t.Errorf("Expected miss, but got hit at distance %f", hit.Distance)
	}
}

func TestIntersectSphere_InsideUsesFarRoot(t *testing.T) {
	// Ray starts at the center; the near root is behind the origin
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit := NewRayHit()

	IntersectSphere(ray, &hit, testSphere())

	if !hit.Found() {
		t.Fatal("Expected hit from inside the sphere")
	}
	if math.Abs(hit.Distance-1.0) > 1e-12 {
		t.Errorf("Expected far root at distance 1, got %f", hit.Distance)
	}
}

func TestIntersectSphere_BehindRay(t *testing.T) {
	// Sphere entirely behind the ray origin: both roots negative
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))
	hit := NewRayHit()

	IntersectSphere(ray, &hit, testSphere())

	if hit.Found() {
		t.Errorf("Expected miss for sphere behind ray, got distance %f", hit.Distance)
	}
}

func TestIntersectSphere_KeepsCloserHit(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	hit := NewRayHit()
	hit.Distance = 2.0
	hit.Albedo = core.NewVec3(1, 0, 0)
	IntersectSphere(ray, &hit, testSphere()) // would hit at t=4

	if hit.Distance != 2.0 || hit.Albedo != core.NewVec3(1, 0, 0) {
		t.Errorf("Farther sphere overwrote closer hit: %+v", hit)
	}
}
