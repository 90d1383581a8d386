package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	"github.com/jvail/go-interactive-tracer/pkg/core"
	"github.com/jvail/go-interactive-tracer/pkg/sky"
)

// LoadSky loads a PNG or JPEG equirectangular sky image and converts it
// to a linear-color texture
func LoadSky(filename string) (*sky.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open sky image: %w", err)
	}
	defer file.Close()

	// Decode auto-detects PNG/JPEG from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sky image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]; convert to [0, 1]
			// and undo the sRGB encoding so shading happens in linear
			pixels[y*width+x] = core.NewVec3(
				srgbToLinear(float64(r)/65535.0),
				srgbToLinear(float64(g)/65535.0),
				srgbToLinear(float64(b)/65535.0),
			)
		}
	}

	return sky.NewTexture(width, height, pixels), nil
}

func srgbToLinear(c float64) float64 {
	return math.Pow(c, 2.2)
}
