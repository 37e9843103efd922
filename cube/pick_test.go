package cube

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAABBIntersect(t *testing.T) {
	box := AABB{Center: mgl32.Vec3{0, 0, 0}, SideLen: 2}

	t.Run("front hit", func(t *testing.T) {
		h, ok := box.Intersect(Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, -2}})
		require.True(t, ok)
		assert.InDelta(t, 4, h.Distance, 1e-5)
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, h.Normal)
		assert.InDelta(t, 1, h.Point[2], 1e-5)
	})

	t.Run("inside reports exit", func(t *testing.T) {
		h, ok := box.Intersect(Ray{Origin: mgl32.Vec3{0, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}})
		require.True(t, ok)
		assert.InDelta(t, 1, h.Distance, 1e-5)
		assert.Equal(t, mgl32.Vec3{1, 0, 0}, h.Normal)
	})

	t.Run("behind origin", func(t *testing.T) {
		_, ok := box.Intersect(Ray{Origin: mgl32.Vec3{0, 0, 5}, Direction: mgl32.Vec3{0, 0, 1}})
		assert.False(t, ok)
	})

	t.Run("parallel outside slab", func(t *testing.T) {
		_, ok := box.Intersect(Ray{Origin: mgl32.Vec3{3, 0, 5}, Direction: mgl32.Vec3{0, 0, -1}})
		assert.False(t, ok)
	})

	t.Run("zero direction", func(t *testing.T) {
		_, ok := box.Intersect(Ray{Origin: mgl32.Vec3{0, 0, 5}})
		assert.False(t, ok)
	})

	t.Run("diagonal", func(t *testing.T) {
		h, ok := box.Intersect(Ray{Origin: mgl32.Vec3{5, 5, 5}, Direction: mgl32.Vec3{-1, -1, -1}})
		require.True(t, ok)
		assert.InDelta(t, 1, h.Point[0], 1e-4)
		assert.InDelta(t, 1, h.Point[1], 1e-4)
		assert.InDelta(t, 1, h.Point[2], 1e-4)
	})
}

func TestPick(t *testing.T) {
	g := DefaultGeometry()

	t.Run("front center", func(t *testing.T) {
		h, ok := g.Pick(Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}})
		require.True(t, ok)
		assert.Equal(t, CellID(22), h.Cell)
		assert.Equal(t, FaceF, h.Face)
		assert.Equal(t, 4, h.Index)
		assert.Equal(t, SlotIndex(FaceF, 4), h.Slot)
		assert.InDelta(t, 10-1.48, h.Distance, 1e-4)
	})

	t.Run("front top right corner", func(t *testing.T) {
		h, ok := g.Pick(Ray{Origin: mgl32.Vec3{0.9, 0.9, 10}, Direction: mgl32.Vec3{0, 0, -1}})
		require.True(t, ok)
		assert.Equal(t, CellID(26), h.Cell)
		assert.Equal(t, FaceF, h.Face)
		assert.Equal(t, 2, h.Index)
	})

	t.Run("top face from above", func(t *testing.T) {
		h, ok := g.Pick(Ray{Origin: mgl32.Vec3{-1, 10, -1}, Direction: mgl32.Vec3{0, -1, 0}})
		require.True(t, ok)
		assert.Equal(t, FaceU, h.Face)
		assert.Equal(t, 0, h.Index)
	})

	t.Run("miss", func(t *testing.T) {
		h, ok := g.Pick(Ray{Origin: mgl32.Vec3{5, 5, 10}, Direction: mgl32.Vec3{0, 0, -1}})
		assert.False(t, ok)
		assert.Equal(t, NoCell, h.Cell)
	})

	t.Run("ray through the gap", func(t *testing.T) {
		_, ok := g.Pick(Ray{Origin: mgl32.Vec3{0.5, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}})
		assert.False(t, ok)
	})

	t.Run("tie breaks on lower cell", func(t *testing.T) {
		flush := Geometry{CellSize: 1}
		h, ok := flush.Pick(Ray{Origin: mgl32.Vec3{0.5, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}})
		require.True(t, ok)
		assert.Equal(t, CellID(22), h.Cell)
		assert.InDelta(t, 8.5, h.Distance, 1e-5)
	})

	t.Run("offset geometry", func(t *testing.T) {
		moved := Geometry{Center: mgl32.Vec3{10, 0, 0}, CellSize: 2, Gap: 0.1}
		h, ok := moved.Pick(Ray{Origin: mgl32.Vec3{5, 0, 0}, Direction: mgl32.Vec3{1, 0, 0}})
		require.True(t, ok)
		assert.Equal(t, FaceL, h.Face)
		assert.Equal(t, 4, h.Index)
	})
}

func TestDragTurn(t *testing.T) {
	g := DefaultGeometry()
	pick := func(origin, dir mgl32.Vec3) Hit {
		h, ok := g.Pick(Ray{Origin: origin, Direction: dir})
		require.True(t, ok)
		return h
	}

	front := pick(mgl32.Vec3{1, 0, 10}, mgl32.Vec3{0, 0, -1})
	turn, ok := DragTurn(front, mgl32.Vec3{0, 1, 0})
	require.True(t, ok)
	assert.Equal(t, "R", turn.String())

	turn, ok = DragTurn(front, mgl32.Vec3{0.1, -1, 0})
	require.True(t, ok)
	assert.Equal(t, "R'", turn.String())

	topEdge := pick(mgl32.Vec3{0, 1, 10}, mgl32.Vec3{0, 0, -1})
	turn, ok = DragTurn(topEdge, mgl32.Vec3{1, 0, 0})
	require.True(t, ok)
	assert.Equal(t, "U'", turn.String())

	// Dragging the sticker the way the turn moves it must land it where the turn says.
	s := Solved().ApplyTurn(turn)
	assert.Equal(t, Green, s.Facelet(FaceR, 1))

	_, ok = DragTurn(front, mgl32.Vec3{0, 0, 1})
	assert.False(t, ok)
	_, ok = DragTurn(Hit{Slot: -1}, mgl32.Vec3{1, 0, 0})
	assert.False(t, ok)
}
