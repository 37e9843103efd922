package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

var (
	// ErrGPUUnavailable is returned when no adapter, device or surface can be obtained.
	ErrGPUUnavailable = errors.New("gpu unavailable")

	// ErrPipelineLink is returned when a pipeline cannot be built from its shaders.
	ErrPipelineLink = errors.New("pipeline link failed")

	// ErrPipelineNotFound is returned when drawing with a key that was never registered.
	ErrPipelineNotFound = errors.New("pipeline not found")

	// ErrFrameInProgress is returned by BeginFrame when the previous frame was not presented.
	ErrFrameInProgress = errors.New("frame already in progress")

	// ErrNoFrame is returned when drawing or ending a frame outside BeginFrame/EndFrame.
	ErrNoFrame = errors.New("no frame in progress")
)

// Surface is the part of a window a renderer needs. window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend
	logger      *zap.Logger

	// pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer is the high-level drawing API. It caches linked pipelines by key and forwards
// resource creation and frame commands to a GPU backend.
//
// A frame is BeginFrame, any number of DrawCall, EndFrame, then Present.
type Renderer interface {
	// Pipeline retrieves a registered pipeline.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline, or nil if not registered
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: pipelines keyed by PipelineKey
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines validates and links pipelines on the GPU, then caches them by key.
	// Keys that are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: ErrPipelineLink wrapping the cause of the first failure
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	//
	// Returns:
	//   - error: an error if the surface targets could not be recreated
	Resize(width, height int) error

	// SetPresentMode changes how frames reach the display. It takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: PresentModeVSync or PresentModeUncapped
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers uploads vertex and index data into the provider's mesh buffers, creating
	// them on first use and reusing them while they are large enough.
	//
	// Parameters:
	//   - provider: the provider that owns the mesh buffers
	//   - vertexData: the raw vertex bytes
	//   - indexData: the raw uint32 index bytes
	//   - indexCount: the number of indices drawn
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the buffers and bind group described by a layout.
	//
	// Parameters:
	//   - provider: the provider that owns the bind group
	//   - descriptor: the layout, usually taken from a shader
	//
	// Returns:
	//   - error: an error if the layout has non-buffer bindings or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers queues buffer writes.
	//
	// Parameters:
	//   - writes: the writes to perform
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and starts the render pass.
	//
	// Returns:
	//   - error: ErrFrameInProgress if the last frame was not presented
	BeginFrame() error

	// DrawCall draws a mesh with a registered pipeline inside the current frame.
	//
	// Parameters:
	//   - pipelineKey: the registered pipeline key
	//   - mesh: the provider holding the vertex and index buffers
	//   - bindGroups: providers whose bind groups are set at group 0, 1, ...
	//
	// Returns:
	//   - error: ErrPipelineNotFound for an unknown key, ErrNoFrame outside a frame
	DrawCall(pipelineKey string, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the commands.
	//
	// Returns:
	//   - error: ErrNoFrame if no frame was begun
	EndFrame() error

	// Present shows the submitted frame and releases the surface texture.
	Present()

	// Release frees every cached pipeline and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing to the given surface.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - surface: the window to draw into
//   - options: options configuring the renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: ErrGPUUnavailable if the backend cannot be created
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
		if err != nil {
			return nil, err
		}
		r.backend = b
	default:
		return nil, fmt.Errorf("%w: unknown backend %d", ErrGPUUnavailable, backendType)
	}

	if err := r.attach(surface.Width(), surface.Height()); err != nil {
		return nil, err
	}
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		logger:        zap.NewNop(),
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) attach(width, height int) error {
	r.backend.SetPresentMode(r.presentMode)
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.backend.Release()
		return err
	}
	r.logger.Info("renderer ready",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Uint32("msaa", uint32(r.msaa)),
	)
	return nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, v := range r.pipelineCache {
		out[k] = v
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrPipelineLink, err)
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPipelineLink, key, err)
		}
		r.pipelineCache[key] = p
		r.logger.Debug("pipeline registered", zap.String("pipeline", key))
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("mesh %s: empty vertex or index data", provider.Label())
	}
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %q", ErrPipelineNotFound, pipelineKey)
	}
	return r.backend.DrawCall(p, mesh, bindGroups)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}
