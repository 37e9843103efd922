package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller framing a cube of side 3 at the origin,
// seen from the front right and slightly above.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    9,
		azimuth:   float32(math.Pi / 6),
		elevation: float32(math.Pi / 7),

		minRadius:    4,
		maxRadius:    30,
		minElevation: float32(-math.Pi/2 + 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		orbitSpeed:       0.05,
		mouseSensitivity: 0.008,
		zoomSpeed:        0.6,
	}

	for _, option := range options {
		option(cc)
	}

	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.azimuth = wrapAngle(cc.azimuth)
	cc.updatePosition()
	return cc
}

// wrapAngle maps a into [-Pi, Pi).
func wrapAngle(a float32) float32 {
	w := math.Mod(float64(a)+math.Pi, 2*math.Pi)
	if w < 0 {
		w += 2 * math.Pi
	}
	return float32(w - math.Pi)
}

// updatePosition recomputes the position from the spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position = cc.target.Add(mgl32.Vec3{
		cc.radius * cosElev * sinAzim,
		cc.radius * sinElev,
		cc.radius * cosElev * cosAzim,
	})
}

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) orbitLocked(dAzimuth, dElevation float32) {
	cc.azimuth = wrapAngle(cc.azimuth + dAzimuth)
	cc.elevation = common.Clamp(cc.elevation+dElevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Orbit(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbitLocked(dAzimuth, dElevation)
}

func (cc *cameraControllerImpl) Drag(dx, dy float64) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbitLocked(-float32(dx)*cc.mouseSensitivity, float32(dy)*cc.mouseSensitivity)
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.Orbit(-cc.orbitSpeed, 0)
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.Orbit(cc.orbitSpeed, 0)
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.Orbit(0, cc.orbitSpeed)
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.Orbit(0, -cc.orbitSpeed)
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) RadiusBounds() (float32, float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius, cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = wrapAngle(azimuth)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) ElevationBounds() (float32, float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation, cc.maxElevation
}
