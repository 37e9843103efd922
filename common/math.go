package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Mat4Bytes returns the raw column-major bytes of a matrix for uniform uploads.
// The returned slice aliases m.
func Mat4Bytes(m *mgl32.Mat4) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&m[0])), int(unsafe.Sizeof(*m)))
}

// Perspective creates a perspective projection matrix mapping depth to the WebGPU clip range [0, 1].
// mgl32.Perspective targets the OpenGL [-1, 1] range, which clips the near half of the depth buffer under WebGPU.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// LookAt builds a right-handed view matrix.
//
// Parameters:
//   - eye: camera position
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically +Y)
//
// Returns:
//   - mgl32.Mat4: the view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	if eye.ApproxEqual(center) {
		return mgl32.Ident4()
	}
	return mgl32.LookAtV(eye, center, up)
}

// ScreenToNDC converts a window-space cursor position (origin top-left, y down) to normalized device coordinates.
//
// Parameters:
//   - x, y: cursor position in pixels
//   - width, height: viewport size in pixels
//
// Returns:
//   - float32, float32: NDC x and y in [-1, 1], y up
func ScreenToNDC(x, y float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := float32(2*x/float64(width) - 1)
	ny := float32(1 - 2*y/float64(height))
	return nx, ny
}

// Unproject maps a point in normalized device coordinates back to world space.
//
// Parameters:
//   - ndcX, ndcY: NDC coordinates in [-1, 1]
//   - ndcZ: NDC depth in [0, 1] (0 = near plane)
//   - invViewProj: inverse of projection * view
//
// Returns:
//   - mgl32.Vec3: the world-space point
//   - bool: false when the homogeneous w is degenerate
func Unproject(ndcX, ndcY, ndcZ float32, invViewProj mgl32.Mat4) (mgl32.Vec3, bool) {
	p := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, ndcZ, 1})
	if mgl32.Abs(p[3]) < 1e-12 {
		return mgl32.Vec3{}, false
	}
	return p.Vec3().Mul(1 / p[3]), true
}

// RotateAxis returns a rotation matrix of angle radians around a unit principal axis (0=X, 1=Y, 2=Z).
func RotateAxis(axis int, angle float32) mgl32.Mat4 {
	switch axis {
	case 0:
		return mgl32.HomogRotate3DX(angle)
	case 1:
		return mgl32.HomogRotate3DY(angle)
	default:
		return mgl32.HomogRotate3DZ(angle)
	}
}
