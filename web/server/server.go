package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jvail/go-interactive-tracer/pkg/core"
	"github.com/jvail/go-interactive-tracer/pkg/renderer"
	"github.com/jvail/go-interactive-tracer/pkg/scene"
	"github.com/jvail/go-interactive-tracer/pkg/sky"
	"github.com/jvail/go-interactive-tracer/pkg/tracer"
)

// Server handles web requests for the progressive tracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Width   int   // Image width
	Height  int   // Image height
	Frames  int   // Frames to accumulate
	Spheres int   // Sphere placement slots
	Seed    int64 // Scene random seed
}

// ProgressUpdate represents a single progressive update sent via SSE
type ProgressUpdate struct {
	FrameNumber int    `json:"frameNumber"`
	TotalFrames int    `json:"totalFrames"`
	SampleIndex int    `json:"sampleIndex"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	FrameMs     int64  `json:"frameMs"`
	ElapsedMs   int64  `json:"elapsedMs"`
	IsComplete  bool   `json:"isComplete"`
}

// Start starts the web server
func (s *Server) Start() error {
	http.Handle("/", http.FileServer(http.Dir("web/static/")))
	http.HandleFunc("/api/render", s.handleRender)
	http.HandleFunc("/api/health", s.handleHealth)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRender streams progressively accumulated frames via SSE. Each
// request builds a fresh scene generation from the requested seed, so
// changing the seed is the scene-regeneration control.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	light := scene.NewLight(core.NewVec3(-0.5, -1, -0.3), 1.6)
	cfg := scene.DefaultConfig()
	cfg.SphereCount = req.Spheres
	cfg.Seed = req.Seed
	sceneObj, err := scene.Generate(cfg, light)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Scene error: %v", err))
		return
	}

	camera := tracer.NewLookAtCamera(
		core.NewVec3(0, 6, 24),
		core.NewVec3(0, 2, 0),
		core.NewVec3(0, 1, 0),
		40.0,
		float64(req.Width)/float64(req.Height),
	)
	skyTex := sky.NewGradient(
		core.NewVec3(0.35, 0.55, 0.95),
		core.NewVec3(0.95, 0.95, 1.0),
		512, 256,
	)

	kernel := tracer.NewKernel(sceneObj.Spheres, skyTex, camera, light.Packed())
	fr := renderer.NewFrameRenderer(kernel, req.Width, req.Height, 0, renderer.NewDefaultLogger())
	input := renderer.FrameInput{Camera: camera, Light: light.Packed()}

	// Client disconnect cancels rendering between frames
	ctx := r.Context()
	startTime := time.Now()

	frameChan, errChan := fr.RenderProgressive(ctx, req.Frames, input)

	for result := range frameChan {
		imageData, err := s.imageToBase64PNG(result.Image)
		if err != nil {
			s.sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
			return
		}

		update := ProgressUpdate{
			FrameNumber: result.FrameNumber,
			TotalFrames: req.Frames,
			SampleIndex: result.SampleIndex,
			ImageData:   imageData,
			FrameMs:     result.Stats.FrameTime.Milliseconds(),
			ElapsedMs:   time.Since(startTime).Milliseconds(),
			IsComplete:  result.IsLast,
		}
		if err := s.sendSSEUpdate(w, update); err != nil {
			return
		}
	}
	if err := <-errChan; err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	s.sendSSEEvent(w, "complete", "Rendering completed")
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", 640, 64, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", 360, 64, 2000); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(r.URL.Query(), "frames", 64, 1, 4096); err != nil {
		return nil, err
	}
	if req.Spheres, err = parseIntParam(r.URL.Query(), "spheres", 60, 1, 500); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(r.URL.Query(), "seed", 42, 1, 1<<30)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if req.Width*req.Height > 1280*720 && req.Frames > 256 {
		log.Printf("Render warning: large image with many frames may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEUpdate sends a progress update via SSE
func (s *Server) sendSSEUpdate(w http.ResponseWriter, update ProgressUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, "progress", string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
