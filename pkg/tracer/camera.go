package tracer

import "github.com/jvail/go-interactive-tracer/pkg/core"

// Camera generates eye rays from a camera-to-world transform and an
// inverse projection matrix, the pair the host supplies each frame
type Camera struct {
	CameraToWorld     core.Mat4
	InverseProjection core.Mat4
}

// NewCamera creates a camera from explicit matrices
func NewCamera(cameraToWorld, inverseProjection core.Mat4) Camera {
	return Camera{
		CameraToWorld:     cameraToWorld,
		InverseProjection: inverseProjection,
	}
}

// NewLookAtCamera builds both matrices from look-at parameters
func NewLookAtCamera(eye, target, up core.Vec3, vfovDegrees, aspect float64) Camera {
	return Camera{
		CameraToWorld:     core.LookAt(eye, target, up),
		InverseProjection: core.InversePerspective(vfovDegrees, aspect, 0.1, 100),
	}
}

// Ray unprojects an NDC coordinate (u, v in [-1, 1]) into a world-space
// ray with full energy. The origin is the camera position; the direction
// goes through the inverse projection and then the rotation part of the
// camera-to-world transform.
func (c Camera) Ray(u, v float64) core.Ray {
	origin := c.CameraToWorld.TransformPoint(core.NewVec3(0, 0, 0))

	dir := c.InverseProjection.MulVec4(core.NewVec4(u, v, 0, 1)).XYZ()
	dir = c.CameraToWorld.TransformDirection(dir).Normalize()

	return core.NewRay(origin, dir)
}

// Equal reports whether two cameras share the same transforms. The host
// uses this to diff camera state between frames.
func (c Camera) Equal(other Camera) bool {
	return c.CameraToWorld == other.CameraToWorld &&
		c.InverseProjection == other.InverseProjection
}
