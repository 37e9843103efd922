package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadius sets the initial orbit radius.
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - CameraControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle above the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithTarget sets the orbit pivot.
//
// Parameters:
//   - target: world-space pivot
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = target
	}
}

// WithRadiusBounds sets the zoom limits. Ignored unless 0 < min <= max.
//
// Parameters:
//   - minRadius: closest allowed distance
//   - maxRadius: farthest allowed distance
//
// Returns:
//   - CameraControllerOption: functional option to set the radius bounds
func WithRadiusBounds(minRadius, maxRadius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if minRadius > 0 && minRadius <= maxRadius {
			cc.minRadius, cc.maxRadius = minRadius, maxRadius
		}
	}
}

// WithElevationBounds sets the vertical angle limits. Ignored unless min <= max.
//
// Parameters:
//   - minElevation: lowest allowed elevation in radians
//   - maxElevation: highest allowed elevation in radians
//
// Returns:
//   - CameraControllerOption: functional option to set the elevation bounds
func WithElevationBounds(minElevation, maxElevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if minElevation <= maxElevation {
			cc.minElevation, cc.maxElevation = minElevation, maxElevation
		}
	}
}

// WithOrbitSpeed sets the angle applied by OrbitLeft/Right/Up/Down.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets radians per pixel for Drag.
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the radius change per unit of Zoom delta.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}
