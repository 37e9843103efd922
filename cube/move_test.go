package cube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", Move{Base: 'R', Amount: 1}},
		{"U'", Move{Base: 'U', Amount: -1}},
		{"F2", Move{Base: 'F', Amount: 2}},
		{"B2'", Move{Base: 'B', Amount: 2}},
		{"M'", Move{Base: 'M', Amount: -1}},
		{"x", Move{Base: 'x', Amount: 1}},
		{" z' ", Move{Base: 'z', Amount: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMove(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "Q", "R3", "r", "Uw", "R''"} {
		_, err := ParseMove(bad)
		assert.ErrorIs(t, err, ErrInvalidMove, bad)
	}
}

func TestParseAndFormatMoves(t *testing.T) {
	moves, err := ParseMoves("R U R' U'  F2\tM'")
	require.NoError(t, err)
	assert.Equal(t, "R U R' U' F2 M'", FormatMoves(moves))

	_, err = ParseMoves("R U K")
	assert.ErrorIs(t, err, ErrInvalidMove)

	moves, err = ParseMoves("")
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestInvertSequence(t *testing.T) {
	seq := mustMoves(t, "R U2 F' x M")
	inv := InvertSequence(seq)
	assert.Equal(t, "M' x' F U2 R'", FormatMoves(inv))
	assert.True(t, Solved().ApplyMoves(seq).ApplyMoves(inv).IsIdentity())
}

func TestMoveForTurnRoundTrip(t *testing.T) {
	for axis := AxisX; axis <= AxisZ; axis++ {
		for layer := -1; layer <= 1; layer++ {
			for _, q := range []int{1, -1, 2} {
				turn := Turn{Axis: axis, Layer: layer, Quarters: q}
				m := MoveForTurn(turn)
				require.Len(t, m.Turns(), 1)
				assert.Equal(t, turn, m.Turns()[0], m.String())
				assert.Equal(t, turn.Inverse(), m.Inverse().Turns()[0])
			}
		}
	}
}

func TestTurnValid(t *testing.T) {
	assert.True(t, Turn{Axis: AxisZ, Layer: -1, Quarters: 2}.Valid())
	assert.False(t, Turn{Axis: AxisZ, Layer: 2, Quarters: 1}.Valid())
	assert.False(t, Turn{Axis: Axis(4), Layer: 0, Quarters: 1}.Valid())
	assert.False(t, Turn{Axis: AxisX, Layer: 0, Quarters: 3}.Valid())
	assert.Equal(t, Solved(), Solved().ApplyTurn(Turn{Axis: AxisX, Quarters: 0}))
}

func TestInvalidTurnDoesNotPanic(t *testing.T) {
	bad := Turn{Axis: AxisY, Layer: 5, Quarters: 1}
	assert.NotPanics(t, func() {
		assert.Equal(t, Move{}, MoveForTurn(bad))
		assert.Equal(t, "invalid(axis=1 layer=5 quarters=1)", bad.String())
	})
	assert.Equal(t, "invalid(axis=7 layer=0 quarters=1)", Turn{Axis: Axis(7), Quarters: 1}.String())
}

func TestCellRotationDirections(t *testing.T) {
	assert.Equal(t, "L'", Column1Forward.String())
	assert.Equal(t, "M'", Column2Forward.String())
	assert.Equal(t, "R", Column3Forward.String())
	assert.Equal(t, "U'", Row1Forward.String())
	assert.Equal(t, "E", Row2Forward.String())
	assert.Equal(t, "D", Row3Forward.String())

	// Forward columns carry the front face up, forward rows carry it to the right.
	for _, turn := range []Turn{Column1Forward, Column2Forward, Column3Forward} {
		s := Solved().ApplyTurn(turn)
		col := turn.Layer + 1
		for r := range 3 {
			assert.Equal(t, Green, s.Facelet(FaceU, r*3+col), turn.String())
		}
	}
	for _, turn := range []Turn{Row1Forward, Row2Forward, Row3Forward} {
		s := Solved().ApplyTurn(turn)
		row := 1 - turn.Layer
		for c := range 3 {
			assert.Equal(t, Green, s.Facelet(FaceR, row*3+c), turn.String())
		}
	}
}
