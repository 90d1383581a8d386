package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/jvail/go-interactive-tracer/pkg/core"
	"github.com/jvail/go-interactive-tracer/pkg/loaders"
	"github.com/jvail/go-interactive-tracer/pkg/renderer"
	"github.com/jvail/go-interactive-tracer/pkg/scene"
	"github.com/jvail/go-interactive-tracer/pkg/sky"
	"github.com/jvail/go-interactive-tracer/pkg/tracer"
)

func main() {
	width := flag.Int("width", 800, "Output width in pixels")
	height := flag.Int("height", 450, "Output height in pixels")
	frames := flag.Int("frames", 64, "Frames to accumulate")
	spheres := flag.Int("spheres", 60, "Sphere placement slots")
	seed := flag.Int64("seed", 42, "Scene random seed")
	skyPath := flag.String("sky", "", "Equirectangular sky image (PNG/JPEG); gradient sky if empty")
	outputDir := flag.String("output", "output", "Output directory")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Interactive Path Tracer")
		fmt.Println("Usage: tracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Renders a random sphere scene progressively, accumulating")
		fmt.Println("the given number of jittered frames before writing a PNG.")
		return
	}

	logger := renderer.NewDefaultLogger()
	logger.Printf("Starting interactive path tracer...\n")

	skyTex, err := buildSky(*skyPath)
	if err != nil {
		fmt.Printf("Error loading sky: %v\n", err)
		os.Exit(1)
	}

	light := scene.NewLight(core.NewVec3(-0.5, -1, -0.3), 1.6)

	cfg := scene.DefaultConfig()
	cfg.SphereCount = *spheres
	cfg.Seed = *seed
	sceneObj, err := scene.Generate(cfg, light)
	if err != nil {
		fmt.Printf("Error generating scene: %v\n", err)
		os.Exit(1)
	}
	logger.Printf("Scene: %d spheres placed\n", len(sceneObj.Spheres))

	camera := tracer.NewLookAtCamera(
		core.NewVec3(0, 6, 24),
		core.NewVec3(0, 2, 0),
		core.NewVec3(0, 1, 0),
		40.0,
		float64(*width)/float64(*height),
	)

	kernel := tracer.NewKernel(sceneObj.Spheres, skyTex, camera, light.Packed())
	fr := renderer.NewFrameRenderer(kernel, *width, *height, 0, logger)

	input := renderer.FrameInput{Camera: camera, Light: light.Packed()}

	startTime := time.Now()
	frameChan, errChan := fr.RenderProgressive(context.Background(), *frames, input)

	for result := range frameChan {
		if result.FrameNumber%8 == 0 || result.IsLast {
			logger.Printf("Frame %d/%d accumulated (sample index %d, %v/frame)\n",
				result.FrameNumber, *frames, result.SampleIndex, result.Stats.FrameTime)
		}
	}
	if err := <-errChan; err != nil {
		fmt.Printf("Render error: %v\n", err)
		os.Exit(1)
	}

	logger.Printf("Accumulated %d frames in %v\n", *frames, time.Since(startTime))

	if err := saveImage(fr, *outputDir); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}
}

// buildSky loads the sky image when a path is given, otherwise falls
// back to a procedural gradient
func buildSky(path string) (*sky.Texture, error) {
	if path == "" {
		return sky.NewGradient(
			core.NewVec3(0.35, 0.55, 0.95),
			core.NewVec3(0.95, 0.95, 1.0),
			512, 256,
		), nil
	}
	return loaders.LoadSky(path)
}

func saveImage(fr *renderer.FrameRenderer, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, fr.Image()); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}
