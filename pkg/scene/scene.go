package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jvail/go-interactive-tracer/pkg/core"
	"github.com/jvail/go-interactive-tracer/pkg/geometry"
)

// Light is a directional light: a direction pointing from the light
// toward the scene plus a scalar intensity
type Light struct {
	Direction core.Vec3
	Intensity float64
}

// NewLight creates a directional light. The direction is normalized and
// a negative intensity clamps to zero.
func NewLight(direction core.Vec3, intensity float64) Light {
	if intensity < 0 {
		intensity = 0
	}
	return Light{
		Direction: direction.Normalize(),
		Intensity: intensity,
	}
}

// Packed returns the light as (direction.x, direction.y, direction.z,
// intensity), the layout the kernel consumes
func (l Light) Packed() core.Vec4 {
	return core.NewVec4(l.Direction.X, l.Direction.Y, l.Direction.Z, l.Intensity)
}

// Config controls random sphere placement
type Config struct {
	SphereCount     int     // Number of placement slots to attempt
	PlacementRadius float64 // Spheres land within this radius of the origin
	RadiusMin       float64 // Smallest sphere radius
	RadiusMax       float64 // Largest sphere radius
	Seed            int64   // RNG seed for reproducible scenes
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SphereCount:     60,
		PlacementRadius: 30.0,
		RadiusMin:       0.4,
		RadiusMax:       1.6,
		Seed:            42,
	}
}

// Validate checks the configuration at construction time so the kernel
// never has to
func (c Config) Validate() error {
	if c.SphereCount <= 0 {
		return fmt.Errorf("sphere count must be positive, got %d", c.SphereCount)
	}
	if c.RadiusMin <= 0 || c.RadiusMax < c.RadiusMin {
		return fmt.Errorf("invalid radius range [%f, %f]", c.RadiusMin, c.RadiusMax)
	}
	if c.PlacementRadius <= 0 {
		return fmt.Errorf("placement radius must be positive, got %f", c.PlacementRadius)
	}
	return nil
}

// Scene holds the sphere list and the light. The sphere slice is
// immutable for the lifetime of a generation: Rebuild replaces it
// wholesale, never appends.
type Scene struct {
	Spheres []geometry.Sphere
	Light   Light
}

// Attempts per placement slot before the slot is abandoned. A candidate
// that overlaps an accepted sphere is discarded, not retried in place.
const placementAttempts = 8

// Generate builds a scene of randomly placed, non-overlapping spheres
// resting on the ground plane.
func Generate(cfg Config, light Light) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene config: %w", err)
	}

	random := rand.New(rand.NewSource(cfg.Seed))
	spheres := make([]geometry.Sphere, 0, cfg.SphereCount)

	for slot := 0; slot < cfg.SphereCount; slot++ {
		for attempt := 0; attempt < placementAttempts; attempt++ {
			candidate := randomSphere(cfg, random)
			if overlapsAny(candidate, spheres) {
				continue
			}
			spheres = append(spheres, candidate)
			break
		}
	}

	return &Scene{Spheres: spheres, Light: light}, nil
}

// Rebuild regenerates the sphere list in place, fully replacing the
// previous generation
func (s *Scene) Rebuild(cfg Config) error {
	rebuilt, err := Generate(cfg, s.Light)
	if err != nil {
		return err
	}
	s.Spheres = rebuilt.Spheres
	return nil
}

// randomSphere draws a candidate sphere: random radius, random position
// on a disk around the origin, resting on the ground, with either a
// diffuse or a metallic surface
func randomSphere(cfg Config, random *rand.Rand) geometry.Sphere {
	radius := cfg.RadiusMin + random.Float64()*(cfg.RadiusMax-cfg.RadiusMin)

	angle := 2 * math.Pi * random.Float64()
	dist := cfg.PlacementRadius * math.Sqrt(random.Float64())
	position := core.NewVec3(dist*math.Cos(angle), radius, dist*math.Sin(angle))

	color := core.NewVec3(random.Float64(), random.Float64(), random.Float64())
	if random.Float64() < 0.5 {
		// Metallic: color lives in the specular channel
		return geometry.NewSphere(position, radius, core.NewVec3(0, 0, 0), color)
	}
	// Diffuse: colored albedo with a dielectric-like specular floor
	return geometry.NewSphere(position, radius, color, core.NewVec3All(0.04))
}

// overlapsAny checks the candidate against every accepted sphere using
// the squared-distance vs. combined-radius test
func overlapsAny(candidate geometry.Sphere, accepted []geometry.Sphere) bool {
	for _, other := range accepted {
		minDist := candidate.Radius + other.Radius
		if candidate.Position.Subtract(other.Position).LengthSquared() < minDist*minDist {
			return true
		}
	}
	return false
}
