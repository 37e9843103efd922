package game

import (
	"github.com/Carmen-Shannon/oxy-rubiks/config"
	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/camera"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/mesh"
)

// View draws the cube. The default implementation pairs a renderer.Graphics with a camera.
type View interface {
	// Draw renders the committed state with the turning layer at progress.
	//
	// Parameters:
	//   - state: the committed facelets
	//   - progress: the animation in flight, nil when idle
	//
	// Returns:
	//   - error: a draw error
	Draw(state cube.State, progress *animator.Progress) error

	// Apply pushes changed graphical settings to the surface.
	//
	// Parameters:
	//   - gs: the new settings
	//
	// Returns:
	//   - error: a resize error
	Apply(gs config.GraphicalSettings) error

	// Camera returns the camera used for drawing and picking.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Viewport returns the drawable size in pixels.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Viewport() (int, int)

	// Release frees GPU resources held by the view.
	Release()
}

type sceneView struct {
	graphics renderer.Graphics
	camera   camera.Camera
	builder  mesh.CubeMeshBuilder
}

var _ View = &sceneView{}

// NewView creates a View drawing through graphics from cam's point of view.
//
// Parameters:
//   - graphics: the graphics with linked shaders
//   - cam: the camera, nil for the default orbit camera
//   - builder: the cube mesh builder, nil for the default
//
// Returns:
//   - View: the view
func NewView(graphics renderer.Graphics, cam camera.Camera, builder mesh.CubeMeshBuilder) View {
	if cam == nil {
		cam = camera.NewCamera()
	}
	if builder == nil {
		builder = mesh.NewCubeMeshBuilder()
	}
	return &sceneView{graphics: graphics, camera: cam, builder: builder}
}

func (v *sceneView) Draw(state cube.State, progress *animator.Progress) error {
	return v.graphics.Draw(renderer.Frame{
		ViewProjection: v.camera.ViewProjection(v.graphics.Aspect()),
		Mesh:           v.builder.Build(state, progress),
	})
}

func (v *sceneView) Apply(gs config.GraphicalSettings) error {
	mode := renderer.PresentModeUncapped
	if gs.VSync {
		mode = renderer.PresentModeVSync
	}
	// present mode changes land on the next surface configure
	v.graphics.Renderer().SetPresentMode(mode)
	return v.graphics.Resize(gs.Resolution.Width, gs.Resolution.Height)
}

func (v *sceneView) Camera() camera.Camera { return v.camera }

func (v *sceneView) Viewport() (int, int) { return v.graphics.Viewport() }

func (v *sceneView) Release() { v.graphics.Release() }
