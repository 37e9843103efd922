package renderer

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// CubePipelineKey is the pipeline Graphics draws the cube with.
const CubePipelineKey = "cube"

// ErrNoMesh is returned by Draw before any mesh has been uploaded.
var ErrNoMesh = errors.New("no mesh uploaded")

// Frame is everything Graphics needs to draw one frame.
type Frame struct {
	ViewProjection mgl32.Mat4

	// Mesh replaces the uploaded geometry when non-nil.
	Mesh *mesh.SimpleMesh
}

// cameraUniform mirrors the Camera struct of the cube shader.
type cameraUniform struct {
	ViewProj mgl32.Mat4
	LightDir mgl32.Vec4
}

// graphics is the implementation of the Graphics interface.
type graphics struct {
	mu *sync.Mutex

	renderer Renderer
	// viewport packs width in the high and height in the low 32 bits
	viewport atomic.Uint64

	camera   bind_group_provider.BindGroupProvider
	geometry bind_group_provider.BindGroupProvider
	linked   bool

	lightDir mgl32.Vec3
	logger   *zap.Logger
}

// Graphics draws the cube through a Renderer: it owns the cube pipeline, the camera uniform and
// the mesh buffers, and tracks the viewport size.
type Graphics interface {
	// InitShaders compiles the vertex and fragment stages and links the cube pipeline.
	// An empty path selects the built-in cube shader for that stage.
	//
	// Parameters:
	//   - vertexPath: WGSL file for the vertex stage
	//   - fragmentPath: WGSL file for the fragment stage
	//
	// Returns:
	//   - error: ErrShaderNotFound, ErrShaderCompile or ErrPipelineLink
	InitShaders(vertexPath, fragmentPath string) error

	// Resize records the new viewport and reconfigures the surface.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	//
	// Returns:
	//   - error: an error from the renderer
	Resize(width, height int) error

	// Viewport returns the last size passed to Resize or NewGraphics. Safe for concurrent use.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Viewport() (int, int)

	// Aspect returns width over height, 1 for a degenerate viewport.
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// UploadMesh replaces the geometry drawn by Draw.
	//
	// Parameters:
	//   - m: the mesh to upload
	//
	// Returns:
	//   - error: a validation or upload error
	UploadMesh(m *mesh.SimpleMesh) error

	// Draw renders one frame and presents it.
	//
	// Parameters:
	//   - frame: the camera matrix and optional new mesh
	//
	// Returns:
	//   - error: ErrPipelineNotFound before InitShaders, ErrNoMesh before any upload, or a renderer error
	Draw(frame Frame) error

	// Renderer returns the renderer in use.
	//
	// Returns:
	//   - Renderer: the renderer
	Renderer() Renderer

	// Release frees the camera and mesh buffers. The renderer itself is left to its owner.
	Release()
}

var _ Graphics = &graphics{}

// NewGraphics creates a Graphics drawing through r.
//
// Parameters:
//   - r: the renderer
//   - width: the initial viewport width
//   - height: the initial viewport height
//   - options: options configuring the graphics
//
// Returns:
//   - Graphics: the graphics
func NewGraphics(r Renderer, width, height int, options ...GraphicsBuilderOption) Graphics {
	g := &graphics{
		mu:       &sync.Mutex{},
		renderer: r,
		camera:   bind_group_provider.NewBindGroupProvider("camera"),
		geometry: bind_group_provider.NewBindGroupProvider("cube mesh"),
		lightDir: mgl32.Vec3{-0.4, -1, -0.6}.Normalize(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(g)
	}
	g.storeViewport(width, height)
	return g
}

func (g *graphics) storeViewport(width, height int) {
	g.viewport.Store(uint64(uint32(width))<<32 | uint64(uint32(height)))
}

func (g *graphics) Viewport() (int, int) {
	v := g.viewport.Load()
	return int(uint32(v >> 32)), int(uint32(v))
}

func (g *graphics) Aspect() float32 {
	w, h := g.Viewport()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

func (g *graphics) Resize(width, height int) error {
	g.storeViewport(width, height)
	g.logger.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
	return g.renderer.Resize(width, height)
}

func loadStage(key string, t shader.ShaderType, path string) (shader.Shader, error) {
	if path == "" {
		return shader.NewShaderFromSource(key, t, shader.CubeSource)
	}
	return shader.NewShader(key, t, path)
}

func (g *graphics) InitShaders(vertexPath, fragmentPath string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.linked {
		return nil
	}
	vs, err := loadStage("cube_vs", shader.ShaderTypeVertex, vertexPath)
	if err != nil {
		return err
	}
	fs, err := loadStage("cube_fs", shader.ShaderTypeFragment, fragmentPath)
	if err != nil {
		return err
	}

	if _, _, ok := vs.Binding("camera"); !ok {
		return fmt.Errorf("%w: vertex stage does not declare the camera uniform", ErrPipelineLink)
	}
	if err := g.renderer.RegisterPipelines(pipeline.NewPipeline(CubePipelineKey, pipeline.WithShaders(vs, fs))); err != nil {
		return err
	}

	layouts := mergeBindGroupLayouts(vs.BindGroupLayoutDescriptors(), fs.BindGroupLayoutDescriptors())
	if err := g.renderer.InitBindGroup(g.camera, layouts[0]); err != nil {
		return fmt.Errorf("camera bind group: %w", err)
	}
	g.linked = true
	g.logger.Info("cube shaders linked",
		zap.String("vertex", common.Coalesce(vertexPath, "builtin")),
		zap.String("fragment", common.Coalesce(fragmentPath, "builtin")),
	)
	return nil
}

func (g *graphics) UploadMesh(m *mesh.SimpleMesh) error {
	return m.Upload(g.renderer, g.geometry)
}

func (g *graphics) Draw(frame Frame) error {
	g.mu.Lock()
	linked := g.linked
	g.mu.Unlock()
	if !linked {
		return fmt.Errorf("%w: %s", ErrPipelineNotFound, CubePipelineKey)
	}

	if frame.Mesh != nil {
		if err := g.UploadMesh(frame.Mesh); err != nil {
			return err
		}
	}
	if g.geometry.IndexCount() == 0 {
		return ErrNoMesh
	}

	uniform := []cameraUniform{{ViewProj: frame.ViewProjection, LightDir: g.lightDir.Vec4(0)}}
	g.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		bind_group_provider.NewBufferWrite(g.camera, 0, uniform),
	})

	if err := g.renderer.BeginFrame(); err != nil {
		return err
	}
	drawErr := g.renderer.DrawCall(CubePipelineKey, g.geometry, []bind_group_provider.BindGroupProvider{g.camera})
	endErr := g.renderer.EndFrame()
	g.renderer.Present()
	return errors.Join(drawErr, endErr)
}

func (g *graphics) Renderer() Renderer {
	return g.renderer
}

func (g *graphics) Release() {
	g.camera.Release()
	g.geometry.Release()
}
