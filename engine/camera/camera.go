package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov  float32
	near float32
	far  float32

	controller CameraController
}

// Camera holds the perspective settings and derives view and projection matrices from an
// attached CameraController. Matrices are computed on demand, so they always reflect the
// controller's current position.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFov sets the vertical field of view. Values outside (0, Pi) are ignored.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Controller returns the attached controller.
	//
	// Returns:
	//   - CameraController: the controller
	Controller() CameraController

	// View returns the view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: world to camera space
	View() mgl32.Mat4

	// Projection returns the perspective matrix for the given aspect ratio, mapping depth to [0, 1].
	//
	// Parameters:
	//   - aspect: viewport width over height
	//
	// Returns:
	//   - mgl32.Mat4: camera to clip space
	Projection(aspect float32) mgl32.Mat4

	// ViewProjection returns Projection(aspect) * View().
	//
	// Parameters:
	//   - aspect: viewport width over height
	//
	// Returns:
	//   - mgl32.Mat4: world to clip space
	ViewProjection(aspect float32) mgl32.Mat4

	// InverseViewProjection returns the inverse of ViewProjection(aspect).
	//
	// Parameters:
	//   - aspect: viewport width over height
	//
	// Returns:
	//   - mgl32.Mat4: clip to world space
	InverseViewProjection(aspect float32) mgl32.Mat4

	// ScreenRay casts a ray from the near plane through a cursor position.
	//
	// Parameters:
	//   - x, y: cursor position in pixels, origin top-left
	//   - width, height: viewport size in pixels
	//
	// Returns:
	//   - cube.Ray: the world-space picking ray with a unit direction
	ScreenRay(x, y float64, width, height int) cube.Ray
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with a 45 degree field of view looking through the controller.
// A default orbit controller is created when none is supplied.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:   &sync.Mutex{},
		up:   mgl32.Vec3{0, 1, 0},
		fov:  float32(math.Pi / 4),
		near: 0.1,
		far:  100,
	}

	for _, option := range options {
		option(c)
	}

	if c.controller == nil {
		c.controller = NewCameraController()
	}
	return c
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFov(fov float32) {
	if fov <= 0 || fov >= math.Pi {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) View() mgl32.Mat4 {
	c.mu.Lock()
	up := c.up
	c.mu.Unlock()
	return common.LookAt(c.controller.Position(), c.controller.Target(), up)
}

func (c *cameraImpl) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Perspective(c.fov, aspect, c.near, c.far)
}

func (c *cameraImpl) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

func (c *cameraImpl) InverseViewProjection(aspect float32) mgl32.Mat4 {
	return c.ViewProjection(aspect).Inv()
}

func (c *cameraImpl) ScreenRay(x, y float64, width, height int) cube.Ray {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	inv := c.InverseViewProjection(aspect)
	nx, ny := common.ScreenToNDC(x, y, width, height)

	near, okNear := common.Unproject(nx, ny, 0, inv)
	far, okFar := common.Unproject(nx, ny, 1, inv)
	eye := c.controller.Position()
	if !okNear || !okFar || far.Sub(near).Len() == 0 {
		return cube.Ray{Origin: eye, Direction: c.controller.Target().Sub(eye).Normalize()}
	}
	return cube.Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}
