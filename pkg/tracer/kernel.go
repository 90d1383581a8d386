package tracer

import (
	"github.com/jvail/go-interactive-tracer/pkg/core"
	"github.com/jvail/go-interactive-tracer/pkg/geometry"
	"github.com/jvail/go-interactive-tracer/pkg/sky"
)

// Surface offset applied along the normal before re-tracing, so a
// reflected or shadow ray cannot immediately hit the surface it left
const selfHitEpsilon = 0.001

// DefaultBounces is the fixed per-pixel bounce budget
const DefaultBounces = 8

// Kernel computes per-pixel color for one frame. The sphere slice is
// read-only during a dispatch and may only be replaced between
// dispatches; Camera and Light are set by the host each frame.
type Kernel struct {
	Spheres []geometry.Sphere
	Sky     *sky.Texture
	Camera  Camera
	Light   core.Vec4 // direction in XYZ, intensity in W
	Bounces int
}

// NewKernel creates a kernel with the default bounce budget
func NewKernel(spheres []geometry.Sphere, skyTex *sky.Texture, camera Camera, light core.Vec4) *Kernel {
	return &Kernel{
		Spheres: spheres,
		Sky:     skyTex,
		Camera:  camera,
		Light:   light,
		Bounces: DefaultBounces,
	}
}

// Shade computes the direct lighting contribution for a hit and mutates
// the ray to continue the path, or samples the sky and terminates the
// path on a miss.
func (k *Kernel) Shade(ray *core.Ray, hit geometry.RayHit) core.Vec3 {
	if hit.Found() {
		// Continue the path as a mirror reflection, attenuated by the
		// surface's specular color
		ray.Origin = hit.Position.Add(hit.Normal.Multiply(selfHitEpsilon))
		ray.Direction = ray.Direction.Reflect(hit.Normal)
		ray.Energy = ray.Energy.MultiplyVec(hit.Specular)

		// Hard shadow test toward the light. A shadowed point loses its
		// direct contribution; the reflection above continues regardless.
		lightDir := k.Light.XYZ()
		shadowRay := core.NewRay(ray.Origin, lightDir.Negate())
		if geometry.Trace(shadowRay, k.Spheres).Found() {
			return core.NewVec3(0, 0, 0)
		}

		// Lambert term; the light direction points toward the scene, so
		// the dot product is negated
		ndotl := clamp01(-hit.Normal.Dot(lightDir))
		return hit.Albedo.Multiply(ndotl * k.Light.W)
	}

	// The ray escaped: no further light can be carried
	ray.Energy = core.NewVec3(0, 0, 0)
	return k.Sky.SampleDirection(ray.Direction)
}

// TracePixel computes the color for one pixel of one frame. The jitter
// offsets (in [0,1)) pick this frame's sub-pixel sample position.
func (k *Kernel) TracePixel(x, y, width, height int, jitterX, jitterY float64) core.Vec3 {
	u := 2*(float64(x)+jitterX)/float64(width) - 1
	v := 2*(float64(y)+jitterY)/float64(height) - 1

	ray := k.Camera.Ray(u, v)
	result := core.NewVec3(0, 0, 0)

	for bounce := 0; bounce < k.Bounces; bounce++ {
		hit := geometry.Trace(ray, k.Spheres)

		// The contribution is weighted by the energy carried into this
		// bounce, before Shade attenuates it
		energy := ray.Energy
		result = result.Add(energy.MultiplyVec(k.Shade(&ray, hit)))

		if ray.Energy.IsZero() {
			break
		}
	}

	return result
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
