package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the positional state of a camera orbiting a target point.
// Position is derived from the target and the spherical coordinates radius, azimuth and elevation.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the orbit pivot the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget moves the pivot and recomputes the position.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)

	// Orbit rotates the camera around the target. Elevation is clamped to its bounds,
	// azimuth wraps to [-Pi, Pi).
	//
	// Parameters:
	//   - dAzimuth: change in horizontal angle, radians
	//   - dElevation: change in vertical angle, radians
	Orbit(dAzimuth, dElevation float32)

	// Drag orbits by a cursor movement in pixels scaled by the mouse sensitivity.
	// Moving the cursor right or down turns the cube the same way.
	//
	// Parameters:
	//   - dx: horizontal cursor movement
	//   - dy: vertical cursor movement
	Drag(dx, dy float64)

	// Zoom moves the camera toward the target by delta * ZoomSpeed, clamped to the radius bounds.
	// Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount, typically a scroll offset
	Zoom(delta float32)

	// OrbitLeft rotates left by OrbitSpeed.
	OrbitLeft()

	// OrbitRight rotates right by OrbitSpeed.
	OrbitRight()

	// OrbitUp raises the camera by OrbitSpeed.
	OrbitUp()

	// OrbitDown lowers the camera by OrbitSpeed.
	OrbitDown()

	// Radius returns the distance from the target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// SetRadius sets the distance from the target, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: the new orbit radius
	SetRadius(radius float32)

	// RadiusBounds returns the allowed orbit radius range.
	//
	// Returns:
	//   - float32: the minimum radius
	//   - float32: the maximum radius
	RadiusBounds() (float32, float32)

	// Azimuth returns the horizontal angle around the Y axis, 0 looking down -Z from +Z.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle.
	//
	// Parameters:
	//   - azimuth: angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle above the XZ plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	//
	// Parameters:
	//   - elevation: angle in radians
	SetElevation(elevation float32)

	// ElevationBounds returns the allowed elevation range.
	//
	// Returns:
	//   - float32: the minimum elevation
	//   - float32: the maximum elevation
	ElevationBounds() (float32, float32)
}
