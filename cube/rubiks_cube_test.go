package cube

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRubiksCubeRotations(t *testing.T) {
	rotations := []struct {
		name     string
		forward  func(RubiksCube)
		backward func(RubiksCube)
		want     string
	}{
		{"1st column", RubiksCube.Rotate1stColumnForward, RubiksCube.Rotate1stColumnBackwards, "L'"},
		{"2nd column", RubiksCube.Rotate2ndColumnForward, RubiksCube.Rotate2ndColumnBackwards, "M'"},
		{"3rd column", RubiksCube.Rotate3rdColumnForward, RubiksCube.Rotate3rdColumnBackwards, "R"},
		{"1st row", RubiksCube.Rotate1stRowForward, RubiksCube.Rotate1stRowBackwards, "U'"},
		{"2nd row", RubiksCube.Rotate2ndRowForward, RubiksCube.Rotate2ndRowBackwards, "E"},
		{"3rd row", RubiksCube.Rotate3rdRowForward, RubiksCube.Rotate3rdRowBackwards, "D"},
	}
	for _, tt := range rotations {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRubiksCube()
			tt.forward(c)
			assert.False(t, c.IsSolved())
			assert.Equal(t, tt.want, FormatMoves(c.History()))

			tt.backward(c)
			assert.True(t, c.State().IsIdentity())
			assert.Len(t, c.History(), 2)

			for range 4 {
				tt.forward(c)
			}
			assert.True(t, c.IsSolved())
		})
	}
}

func TestRubiksCubeUndo(t *testing.T) {
	c := NewRubiksCube()
	c.Apply(mustMoves(t, "R U F2 x")...)

	for range 4 {
		_, err := c.Undo()
		require.NoError(t, err)
	}
	assert.True(t, c.State().IsIdentity())

	_, err := c.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestRubiksCubeSetStateAndReset(t *testing.T) {
	c := NewRubiksCube()
	scrambled := Solved().ApplyMoves(mustMoves(t, "R U R' F"))
	require.NoError(t, c.SetState(scrambled))
	assert.Equal(t, scrambled, c.State())
	assert.Empty(t, c.History())

	bad := Solved()
	bad[slotUFu], bad[slotUFf] = bad[slotUFf], bad[slotUFu]
	assert.ErrorIs(t, c.SetState(bad), ErrInvalidState)
	assert.Equal(t, scrambled, c.State())

	c.Reset()
	assert.True(t, c.State().IsIdentity())

	assert.Equal(t, scrambled, NewRubiksCube(WithState(scrambled)).State())
	assert.True(t, NewRubiksCube(WithState(bad)).State().IsIdentity())
}

func TestRubiksCubeScramble(t *testing.T) {
	c := NewRubiksCube()
	moves := c.Scramble(rand.New(rand.NewPCG(3, 4)), 25)
	require.Len(t, moves, 25)
	for i := 1; i < len(moves); i++ {
		assert.NotEqual(t, moves[i-1].Base, moves[i].Base)
	}
	assert.Equal(t, Solved().ApplyMoves(moves), c.State())
	assert.NoError(t, Validate(c.State()))
	assert.Equal(t, moves, c.History())
}

func TestRubiksCubeScrambleNegativeLength(t *testing.T) {
	c := NewRubiksCube()
	assert.Empty(t, c.Scramble(rand.New(rand.NewPCG(1, 2)), -3))
	assert.True(t, c.State().IsIdentity())
	assert.Empty(t, c.History())
}

func TestRubiksCubeHistoryLimit(t *testing.T) {
	var seen []Move
	c := NewRubiksCube(WithHistoryLimit(3), WithMoveCallback(func(m Move) { seen = append(seen, m) }))
	c.Apply(mustMoves(t, "R U F D B")...)
	assert.Equal(t, "F D B", FormatMoves(c.History()))
	assert.Len(t, seen, 5)

	c.SetHistory(mustMoves(t, "L"))
	assert.Equal(t, "L", FormatMoves(c.History()))
}

func TestRubiksCubeApplyTurn(t *testing.T) {
	c := NewRubiksCube()
	require.NoError(t, c.ApplyTurn(Turn{Axis: AxisZ, Layer: 1, Quarters: -1}))
	assert.Equal(t, "F", FormatMoves(c.History()))
	assert.ErrorIs(t, c.ApplyTurn(Turn{Axis: AxisZ, Layer: 1, Quarters: 0}), ErrInvalidMove)
}

func TestRubiksCubeRayIntersection(t *testing.T) {
	c := NewRubiksCube()
	assert.Equal(t, CellID(22), c.RayIntersection(Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}))
	assert.Equal(t, NoCell, c.RayIntersection(Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, 1}}))
	assert.Equal(t, DefaultGeometry(), c.Geometry())
}

func TestRubiksCubeLogsMoves(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := NewRubiksCube(WithLogger(zap.New(core)))
	c.Rotate3rdColumnForward()
	require.Equal(t, 1, logs.FilterMessage("cube move").Len())
	assert.Equal(t, "R", logs.FilterMessage("cube move").All()[0].ContextMap()["move"])
}

func TestRubiksCubeConcurrentUse(t *testing.T) {
	c := NewRubiksCube(WithHistoryLimit(0))
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if i%2 == 0 {
					c.Rotate3rdColumnForward()
				} else {
					_ = c.State().Net()
				}
			}
		}()
	}
	wg.Wait()
	// 400 R turns is a multiple of four.
	assert.True(t, c.State().IsIdentity())
	assert.Len(t, c.History(), 400)
}
