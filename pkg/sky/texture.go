package sky

import (
	"math"

	"github.com/jvail/go-interactive-tracer/pkg/core"
)

// Texture is an equirectangular environment map in linear color.
// Pixels are row-major: Pixels[y*Width + x].
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewTexture creates a texture from a prepared pixel array
func NewTexture(width, height int, pixels []core.Vec3) *Texture {
	return &Texture{Width: width, Height: height, Pixels: pixels}
}

// NewUniform creates a single-color texture, useful for tests
func NewUniform(color core.Vec3) *Texture {
	return &Texture{Width: 1, Height: 1, Pixels: []core.Vec3{color}}
}

// NewGradient creates a vertical gradient texture from a zenith color at
// the top row to a horizon color at the bottom row
func NewGradient(top, bottom core.Vec3, width, height int) *Texture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 { // A single-row gradient is just the top color
			t = float64(y) / float64(height-1)
		}
		row := top.Lerp(bottom, t)
		for x := 0; x < width; x++ {
			pixels[y*width+x] = row
		}
	}
	return &Texture{Width: width, Height: height, Pixels: pixels}
}

// Sample returns the bilinearly filtered color at (u, v). The u axis
// repeat-wraps around the azimuth seam, so the negative phi the
// direction mapping produces addresses the texture correctly. The v
// axis clamps: v=1 is the top row, v=0 the bottom row, flipped into
// the top-down pixel storage, and the two poles never blend into each
// other.
func (t *Texture) Sample(u, v float64) core.Vec3 {
	if t.Width == 1 && t.Height == 1 {
		return t.Pixels[0]
	}

	x := wrap(u)*float64(t.Width) - 0.5
	y := (1-clamp01(v))*float64(t.Height) - 0.5

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)

	top := c00.Lerp(c10, fx)
	bottom := c01.Lerp(c11, fx)
	return top.Lerp(bottom, fy)
}

// SampleDirection maps a ray direction to spherical coordinates and
// samples the environment there. theta runs from 0 at the zenith to -1
// at the nadir; shifting it by one puts the zenith at v=1.
func (t *Texture) SampleDirection(dir core.Vec3) core.Vec3 {
	theta := math.Acos(dir.Y) / -math.Pi
	phi := math.Atan2(dir.X, -dir.Z) / -math.Pi * 0.5
	return t.Sample(phi, 1+theta)
}

// texel fetches a single pixel, wrapping x around the azimuth seam and
// clamping y at the poles
func (t *Texture) texel(x, y int) core.Vec3 {
	x = ((x % t.Width) + t.Width) % t.Width
	y = min(max(y, 0), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

// wrap maps a coordinate into [0, 1) by discarding the integer part
func wrap(c float64) float64 {
	return c - math.Floor(c)
}

func clamp01(c float64) float64 {
	return max(0, min(1, c))
}
