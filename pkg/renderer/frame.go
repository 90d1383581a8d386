package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/jvail/go-interactive-tracer/pkg/core"
	"github.com/jvail/go-interactive-tracer/pkg/geometry"
	"github.com/jvail/go-interactive-tracer/pkg/tracer"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// FrameInput carries the per-frame host parameters. The host diffs its
// own state and passes explicit changed signals; the renderer never
// tracks transform identity itself.
type FrameInput struct {
	Camera        tracer.Camera
	Light         core.Vec4
	CameraChanged bool
	LightChanged  bool
}

// FrameStats describes one completed frame dispatch
type FrameStats struct {
	FrameTime   time.Duration
	SampleIndex int // Index the frame was accumulated at
	Tiles       int
	Pixels      int
}

// FrameRenderer drives whole-frame dispatches over the tile worker pool
// and accumulates the results progressively
type FrameRenderer struct {
	kernel      *tracer.Kernel
	width       int
	height      int
	tiles       []Tile
	pool        *WorkerPool
	accumulator *Accumulator
	working     []core.Vec3
	random      *rand.Rand
	logger      core.Logger
	started     bool
}

// NewFrameRenderer creates a renderer for the given output size.
// numWorkers <= 0 selects the CPU count.
func NewFrameRenderer(kernel *tracer.Kernel, width, height, numWorkers int, logger core.Logger) *FrameRenderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	tiles := NewTileGrid(width, height)

	return &FrameRenderer{
		kernel:      kernel,
		width:       width,
		height:      height,
		tiles:       tiles,
		pool:        NewWorkerPool(kernel, len(tiles), numWorkers),
		accumulator: NewAccumulator(width, height),
		working:     make([]core.Vec3, width*height),
		random:      rand.New(rand.NewSource(1)),
		logger:      logger,
	}
}

// SampleIndex returns the number of frames accumulated since the last
// invalidation
func (fr *FrameRenderer) SampleIndex() int {
	return fr.accumulator.SampleIndex()
}

// ResetAccumulation restarts convergence without rendering
func (fr *FrameRenderer) ResetAccumulation() {
	fr.accumulator.Reset()
}

// ReplaceScene swaps in a new sphere generation between dispatches and
// restarts convergence. The old slice is released wholesale; no
// in-flight dispatch can reference it because dispatches only happen
// inside RenderFrame.
func (fr *FrameRenderer) ReplaceScene(spheres []geometry.Sphere) {
	fr.kernel.Spheres = spheres
	fr.accumulator.Reset()
}

// Resize reallocates the working and displayed buffers for a new output
// size and resets the sample index atomically with the reallocation
func (fr *FrameRenderer) Resize(width, height int) {
	if fr.started {
		fr.pool.Stop()
		fr.started = false
	}

	fr.width = width
	fr.height = height
	fr.tiles = NewTileGrid(width, height)
	fr.pool = NewWorkerPool(fr.kernel, len(fr.tiles), fr.pool.GetNumWorkers())
	fr.working = make([]core.Vec3, width*height)
	fr.accumulator.Resize(width, height)
}

// RenderFrame runs one whole-frame dispatch and blends it into the
// accumulated buffer. Cancellation is checked before the dispatch; a
// dispatch itself always runs to completion, and a frame that fails to
// accumulate is discarded whole.
func (fr *FrameRenderer) RenderFrame(ctx context.Context, input FrameInput) (FrameStats, error) {
	select {
	case <-ctx.Done():
		return FrameStats{}, ctx.Err()
	default:
	}

	if input.CameraChanged || input.LightChanged {
		fr.accumulator.Reset()
	}
	fr.kernel.Camera = input.Camera
	fr.kernel.Light = input.Light

	if !fr.started {
		fr.pool.Start()
		fr.started = true
	}

	startTime := time.Now()

	// Fresh sub-pixel jitter each dispatch; combined with accumulation
	// this converges to an antialiased result
	jitterX := fr.random.Float64()
	jitterY := fr.random.Float64()

	for _, tile := range fr.tiles {
		fr.pool.SubmitTask(TileTask{
			Tile:    tile,
			JitterX: jitterX,
			JitterY: jitterY,
			Working: fr.working,
			Width:   fr.width,
			Height:  fr.height,
		})
	}
	for i := 0; i < len(fr.tiles); i++ {
		if _, ok := fr.pool.GetResult(); !ok {
			return FrameStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
	}

	stats := FrameStats{
		FrameTime:   time.Since(startTime),
		SampleIndex: fr.accumulator.SampleIndex(),
		Tiles:       len(fr.tiles),
		Pixels:      fr.width * fr.height,
	}

	if err := fr.accumulator.Add(fr.working); err != nil {
		return FrameStats{}, fmt.Errorf("discarding frame: %w", err)
	}
	return stats, nil
}

// Stop shuts down the worker pool. The renderer stays usable; the next
// dispatch starts a fresh pool.
func (fr *FrameRenderer) Stop() {
	if fr.started {
		numWorkers := fr.pool.GetNumWorkers()
		fr.pool.Stop()
		fr.pool = NewWorkerPool(fr.kernel, len(fr.tiles), numWorkers)
		fr.started = false
	}
}

// Image converts the accumulated buffer to an RGBA image with gamma
// correction and clamping. Buffer row 0 is the bottom of the view.
func (fr *FrameRenderer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fr.width, fr.height))
	displayed := fr.accumulator.Displayed()

	for y := 0; y < fr.height; y++ {
		for x := 0; x < fr.width; x++ {
			img.SetRGBA(x, fr.height-1-y, vec3ToColor(displayed[y*fr.width+x]))
		}
	}
	return img
}

// vec3ToColor converts a linear color to RGBA with gamma correction and
// clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.2).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}

// FrameResult is one progressive frame delivered over the channel API
type FrameResult struct {
	FrameNumber int // 1-based
	SampleIndex int // Index the frame was accumulated at
	Image       *image.RGBA
	Stats       FrameStats
	IsLast      bool
}

// RenderProgressive renders up to maxFrames successive frames of the
// current view with channel-based communication. The caller reads both
// channels; rendering stops early when the context is cancelled.
func (fr *FrameRenderer) RenderProgressive(ctx context.Context, maxFrames int, input FrameInput) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)
		defer fr.Stop()

		fr.logger.Printf("Starting progressive render: %d frames (%d workers)\n",
			maxFrames, fr.pool.GetNumWorkers())

		for frame := 1; frame <= maxFrames; frame++ {
			stats, err := fr.RenderFrame(ctx, input)
			if err != nil {
				errChan <- err
				return
			}
			// Only the first frame may carry invalidation flags
			input.CameraChanged = false
			input.LightChanged = false

			result := FrameResult{
				FrameNumber: frame,
				SampleIndex: stats.SampleIndex,
				Image:       fr.Image(),
				Stats:       stats,
				IsLast:      frame == maxFrames,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return frameChan, errChan
}
