package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerspectiveDepthRange(t *testing.T) {
	near, far := float32(0.1), float32(100)
	proj := Perspective(mgl32.DegToRad(45), 4.0/3.0, near, far)

	clip := proj.Mul4x1(mgl32.Vec4{0, 0, -near, 1})
	assert.InDelta(t, 0, clip[2]/clip[3], 1e-5)

	clip = proj.Mul4x1(mgl32.Vec4{0, 0, -far, 1})
	assert.InDelta(t, 1, clip[2]/clip[3], 1e-4)
}

func TestUnprojectInvertsViewProjection(t *testing.T) {
	view := LookAt(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := Perspective(mgl32.DegToRad(60), 1.5, 0.1, 50)
	vp := proj.Mul4(view)

	world := mgl32.Vec3{0.5, -0.25, 0.75}
	clip := vp.Mul4x1(world.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip[3])

	got, ok := Unproject(ndc[0], ndc[1], ndc[2], vp.Inv())
	require.True(t, ok)
	assert.InDelta(t, world[0], got[0], 1e-3)
	assert.InDelta(t, world[1], got[1], 1e-3)
	assert.InDelta(t, world[2], got[2], 1e-3)
}

func TestScreenToNDC(t *testing.T) {
	x, y := ScreenToNDC(0, 0, 800, 600)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = ScreenToNDC(400, 300, 800, 600)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	x, y = ScreenToNDC(10, 10, 0, 600)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestLookAtDegenerateEye(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), LookAt(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 0}))
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.Equal(t, float32(-1), Clamp(float32(-3), -1, 1))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
