package renderer

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/light"
	"github.com/Carmen-Shannon/oxy-room/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// Frame is everything drawn in one frame.
type Frame struct {
	Camera     camera.GPUCameraUniform
	ClearColor [4]float64
	Lights     []light.Light
	Nodes      []scene.Node

	// Shadow is the directional shadow transform; Enabled is zero without a caster.
	Shadow        light.GPUShadowUniform
	ShadowMapSize int
}

// FrameFromScene assembles a Frame from a scene's camera, lights and visible nodes.
//
// Parameters:
//   - s: the scene
//   - clear: the clear color
//
// Returns:
//   - Frame: the frame to render
func FrameFromScene(s scene.Scene, clear [4]float64) Frame {
	lights := s.Lights()
	width, depth, _ := s.RoomSize()
	caster := light.ShadowCaster(lights)
	f := Frame{
		Camera:     s.Camera().GPUUniform(),
		ClearColor: clear,
		Lights:     lights,
		Nodes:      s.Nodes(),
		Shadow:     light.NewShadowUniform(caster, width, depth),
	}
	if caster != nil {
		f.ShadowMapSize = caster.ShadowMapSize()
	}
	return f
}

// Stats reports renderer counters.
type Stats struct {
	Frames  uint64
	Batches int
	Bakes   uint64
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     rendererBackend
	logger      *slog.Logger

	// Pre-creation config collected from builder options
	surfaceDescriptor    *wgpu.SurfaceDescriptor
	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
	width, height        int

	batches map[string]*batch
	order   []*batch
	nextVer uint64
	stats   Stats
}

// Renderer draws scene frames through a backend.
//
// Node geometry is baked to world space on the CPU and cached by node name; a
// node is re-baked only when its transform, color, size or model changes.
type Renderer interface {
	// RenderFrame draws one frame.
	//
	// Parameters:
	//   - frame: camera, lights and nodes
	//
	// Returns:
	//   - error: backend error, e.g. a lost surface
	RenderFrame(frame Frame) error

	// Resize reconfigures the surface. Zero sizes are ignored (minimized windows).
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Stats returns counters for diagnostics.
	Stats() Stats

	// Close releases backend resources.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer. The WGPU backend requires WithSurfaceDescriptor.
//
// Parameters:
//   - backendType: the backend to create
//   - options: functional options
//
// Returns:
//   - Renderer: the renderer
//   - error: error if the backend cannot be created
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      slog.Default(),
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
		width:       1280,
		height:      720,
		batches:     make(map[string]*batch),
	}
	for _, option := range options {
		option(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		if r.surfaceDescriptor == nil {
			return nil, fmt.Errorf("renderer: wgpu backend requires a surface descriptor")
		}
		b, err := newWGPURendererBackend(r.surfaceDescriptor, r.forceFallbackAdapter, r.presentMode, r.sampleCount)
		if err != nil {
			return nil, fmt.Errorf("renderer: %w", err)
		}
		r.backend = b
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend()
	default:
		return nil, fmt.Errorf("renderer: unknown backend type %d", backendType)
	}
	r.backend.ConfigureSurface(r.width, r.height)
	return r, nil
}

func (r *renderer) RenderFrame(frame Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.syncBatches(frame.Nodes)
	if err := r.backend.Draw(frame, r.order); err != nil {
		return err
	}
	r.stats.Frames++
	r.stats.Batches = len(r.order)
	return nil
}

// syncBatches re-bakes changed nodes, drops nodes no longer visible and orders
// translucent batches last.
func (r *renderer) syncBatches(nodes []scene.Node) {
	seen := make(map[string]bool, len(nodes))
	r.order = r.order[:0]
	for _, n := range nodes {
		key := nodeKey(n)
		if seen[key] {
			continue
		}
		seen[key] = true

		fp := fingerprintOf(n)
		b, ok := r.batches[key]
		if !ok || b.fingerprint != fp {
			verts, indices := bakeNode(n)
			r.nextVer++
			b = &batch{key: key, version: r.nextVer, fingerprint: fp, translucent: n.Color[3] < 1}
			marshalBatch(b, verts, indices)
			r.batches[key] = b
			r.stats.Bakes++
		}
		b.castShadow, b.receiveShadow = n.CastShadow, n.ReceiveShadow
		if b.indexCount > 0 {
			r.order = append(r.order, b)
		}
	}
	for key := range r.batches {
		if !seen[key] {
			delete(r.batches, key)
		}
	}
	sort.SliceStable(r.order, func(i, j int) bool {
		return !r.order[i].translucent && r.order[j].translucent
	})
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
	r.logger.Debug("surface resized", "width", width, "height", height)
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
	clear(r.batches)
	r.order = nil
}

// shadowCasters returns the opaque batches drawn into the shadow map, none when
// the frame has no shadow caster.
func shadowCasters(frame Frame, batches []*batch) []*batch {
	if frame.Shadow.Enabled == 0 {
		return nil
	}
	var casters []*batch
	for _, b := range batches {
		if b.castShadow && !b.translucent {
			casters = append(casters, b)
		}
	}
	return casters
}

func putUint32(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}
