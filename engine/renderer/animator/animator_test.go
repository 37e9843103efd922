package animator

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	turnR  = cube.Turn{Axis: cube.AxisX, Layer: 1, Quarters: -1}
	turnU2 = cube.Turn{Axis: cube.AxisY, Layer: 1, Quarters: 2}
	turnF  = cube.Turn{Axis: cube.AxisZ, Layer: 1, Quarters: -1}
)

func TestAnimatorPlaysTurnsInOrder(t *testing.T) {
	var committed []cube.Turn
	a := NewAnimator(
		WithQuarterDuration(100*time.Millisecond),
		WithEasing(EasingLinear),
		WithOnComplete(func(turn cube.Turn) { committed = append(committed, turn) }),
	)
	require.NoError(t, a.Enqueue(turnR))
	require.NoError(t, a.Enqueue(turnU2))
	require.NoError(t, a.Enqueue(turnF))
	assert.False(t, a.Idle())

	done := a.Update(50 * time.Millisecond)
	assert.Empty(t, done)
	p, ok := a.Current()
	require.True(t, ok)
	assert.Equal(t, turnR, p.Turn)
	assert.InDelta(t, 0.5, p.Fraction, 1e-6)
	assert.InDelta(t, -math.Pi/4, p.Angle, 1e-6)
	assert.Equal(t, []cube.Turn{turnU2, turnF}, a.Pending())

	// Finishes R, then spends 100ms of U2's 200ms.
	done = a.Update(150 * time.Millisecond)
	assert.Equal(t, []cube.Turn{turnR}, done)
	p, ok = a.Current()
	require.True(t, ok)
	assert.Equal(t, turnU2, p.Turn)
	assert.InDelta(t, 0.5, p.Fraction, 1e-6)
	assert.InDelta(t, math.Pi/2, p.Angle, 1e-6)

	// One long frame completes everything left.
	done = a.Update(time.Second)
	assert.Equal(t, []cube.Turn{turnU2, turnF}, done)
	assert.Equal(t, []cube.Turn{turnR, turnU2, turnF}, committed)
	assert.True(t, a.Idle())
	_, ok = a.Current()
	assert.False(t, ok)
}

func TestAnimatorSpeed(t *testing.T) {
	a := NewAnimator(WithQuarterDuration(100*time.Millisecond), WithSpeed(2))
	require.NoError(t, a.Enqueue(turnR))
	assert.Equal(t, []cube.Turn{turnR}, a.Update(50*time.Millisecond))

	a.SetSpeed(0)
	assert.Equal(t, float32(0), a.Speed())
	require.NoError(t, a.Enqueue(turnR))
	require.NoError(t, a.Enqueue(turnF))
	assert.Equal(t, []cube.Turn{turnR, turnF}, a.Update(0))
}

func TestAnimatorSmoothstep(t *testing.T) {
	assert.Equal(t, float32(0), EasingSmoothstep.Apply(0))
	assert.Equal(t, float32(0.5), EasingSmoothstep.Apply(0.5))
	assert.Equal(t, float32(1), EasingSmoothstep.Apply(1))
	assert.Less(t, EasingSmoothstep.Apply(0.1), float32(0.1))
	assert.Greater(t, EasingOutCubic.Apply(0.1), float32(0.1))
	assert.Equal(t, float32(1), EasingLinear.Apply(3))
	assert.Equal(t, EasingOutCubic, ParseEasing(EasingOutCubic.String()))
	assert.Equal(t, EasingSmoothstep, ParseEasing("bogus"))
}

func TestAnimatorQueueLimitAndClear(t *testing.T) {
	a := NewAnimator(WithMaxQueue(2))
	require.NoError(t, a.Enqueue(turnR))
	require.NoError(t, a.Enqueue(turnF))
	assert.ErrorIs(t, a.Enqueue(turnU2), ErrQueueFull)

	a.Update(time.Millisecond)
	assert.Equal(t, 2, a.Clear())
	assert.True(t, a.Idle())
}

func TestAnimatorFlush(t *testing.T) {
	var committed []cube.Turn
	a := NewAnimator(WithOnComplete(func(turn cube.Turn) { committed = append(committed, turn) }))
	require.NoError(t, a.Enqueue(turnR))
	require.NoError(t, a.Enqueue(turnF))
	a.Update(10 * time.Millisecond)

	assert.Equal(t, []cube.Turn{turnR, turnF}, a.Flush())
	assert.Equal(t, []cube.Turn{turnR, turnF}, committed)
	assert.True(t, a.Idle())
}

func TestCellTransforms(t *testing.T) {
	g := cube.DefaultGeometry()
	still := CellTransforms(g, nil)
	assert.Equal(t, mgl32.Translate3D(1, 1, 1), still[26])

	// A finished R turn (-90 degrees around X) carries the UFR cell to UBR.
	p := &Progress{Turn: turnR, Fraction: 1, Angle: -math.Pi / 2}
	moved := CellTransforms(g, p)
	pos := moved[26].Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 1, pos[0], 1e-5)
	assert.InDelta(t, 1, pos[1], 1e-5)
	assert.InDelta(t, -1, pos[2], 1e-5)

	// Cells outside the layer do not move.
	assert.Equal(t, still[0], moved[0])
	assert.True(t, InTurningLayer(26, turnR))
	assert.False(t, InTurningLayer(25, turnR))
}
