package renderer

import (
	"runtime"
	"sync"

	"github.com/jvail/go-interactive-tracer/pkg/core"
	"github.com/jvail/go-interactive-tracer/pkg/tracer"
)

// TileTask is one tile of one frame dispatch
type TileTask struct {
	Tile    Tile
	JitterX float64 // This frame's sub-pixel offset, shared by all tiles
	JitterY float64
	Working []core.Vec3 // Shared working buffer for the whole frame
	Width   int
	Height  int
}

// TileResult signals completion of a tile
type TileResult struct {
	TileID int
}

// WorkerPool renders tiles in parallel. Tiles have non-overlapping
// bounds, so workers write disjoint regions of the shared working buffer
// without synchronization; the kernel is read-only during a dispatch.
type WorkerPool struct {
	kernel      *tracer.Kernel
	taskQueue   chan TileTask
	resultQueue chan TileResult
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a worker pool over the shared kernel
func NewWorkerPool(kernel *tracer.Kernel, maxTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		kernel:      kernel,
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a tile task
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		bounds := task.Tile.Bounds
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				task.Working[y*task.Width+x] = wp.kernel.TracePixel(
					x, y, task.Width, task.Height, task.JitterX, task.JitterY)
			}
		}
		wp.resultQueue <- TileResult{TileID: task.Tile.ID}
	}
}
