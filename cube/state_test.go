package cube

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoves(t *testing.T, s string) []Move {
	t.Helper()
	moves, err := ParseMoves(s)
	require.NoError(t, err)
	return moves
}

func TestSolvedState(t *testing.T) {
	s := Solved()
	assert.True(t, s.IsSolved())
	assert.True(t, s.IsIdentity())
	assert.NoError(t, Validate(s))
	for f := FaceU; f <= FaceL; f++ {
		for i := range 9 {
			assert.Equal(t, f.HomeColor(), s.Facelet(f, i))
		}
	}
}

func TestQuarterTurnsHaveOrderFour(t *testing.T) {
	for base := range moveDefs {
		m := Move{Base: base, Amount: 1}
		t.Run(m.String(), func(t *testing.T) {
			s := Solved()
			for range 4 {
				s = s.ApplyMove(m)
			}
			assert.True(t, s.IsIdentity())

			s = Solved().ApplyMove(m).ApplyMove(m.Inverse())
			assert.True(t, s.IsIdentity())

			half := Solved().ApplyMove(Move{Base: base, Amount: 2})
			assert.Equal(t, Solved().ApplyMove(m).ApplyMove(m), half)
		})
	}
}

func TestSexyMoveOrderSix(t *testing.T) {
	seq := mustMoves(t, "R U R' U'")
	s := Solved()
	for i := range 6 {
		s = s.ApplyMoves(seq)
		if i < 5 {
			assert.False(t, s.IsIdentity())
		}
	}
	assert.True(t, s.IsIdentity())
}

func TestFaceTurnStickers(t *testing.T) {
	s := Solved().ApplyMove(Move{Base: 'R', Amount: 1})
	for _, idx := range []int{2, 5, 8} {
		assert.Equal(t, Green, s.Facelet(FaceU, idx), "F moves onto U")
		assert.Equal(t, Yellow, s.Facelet(FaceF, idx), "D moves onto F")
		assert.Equal(t, Blue, s.Facelet(FaceD, idx), "B moves onto D")
	}
	for _, idx := range []int{0, 3, 6} {
		assert.Equal(t, White, s.Facelet(FaceB, idx), "U moves onto B")
	}
	assert.False(t, s.IsSolved())

	s = Solved().ApplyMove(Move{Base: 'U', Amount: 1})
	for idx := range 3 {
		assert.Equal(t, Green, s.Facelet(FaceL, idx))
		assert.Equal(t, Red, s.Facelet(FaceF, idx))
		assert.Equal(t, Blue, s.Facelet(FaceR, idx))
		assert.Equal(t, Orange, s.Facelet(FaceB, idx))
	}
	for idx := 3; idx < 9; idx++ {
		assert.Equal(t, Green, s.Facelet(FaceF, idx))
	}
}

func TestWholeCubeRotationStaysSolved(t *testing.T) {
	for _, seq := range []string{"x", "y'", "z2", "x y z", "R L' x' M'"} {
		s := Solved().ApplyMoves(mustMoves(t, seq))
		assert.True(t, s.IsSolved(), seq)
		assert.NoError(t, Validate(s), seq)
	}
	assert.False(t, Solved().ApplyMove(Move{Base: 'y', Amount: 1}).IsIdentity())
}

func TestSliceEqualsFaceCombination(t *testing.T) {
	// M turns the middle layer the way L turns, which is L' R x'.
	a := Solved().ApplyMoves(mustMoves(t, "M"))
	b := Solved().ApplyMoves(mustMoves(t, "L' R x'"))
	assert.Equal(t, a, b)
}

func TestStringAndParseState(t *testing.T) {
	assert.Equal(t, strings.Repeat("W", 9)+strings.Repeat("Y", 9)+strings.Repeat("G", 9)+
		strings.Repeat("B", 9)+strings.Repeat("R", 9)+strings.Repeat("O", 9), Solved().String())

	rng := rand.New(rand.NewPCG(1, 2))
	bases := []byte("UDFBRLMESxyz")
	for i := range 20 {
		s := Solved()
		for range 30 {
			s = s.ApplyMove(Move{Base: bases[rng.IntN(len(bases))], Amount: []int{1, -1, 2}[rng.IntN(3)]})
		}
		got, err := ParseState(s.String())
		require.NoError(t, err, "scramble %d", i)
		assert.Equal(t, s, got)
	}
}

func TestParseStateRejectsGarbage(t *testing.T) {
	_, err := ParseState("WWW")
	assert.ErrorIs(t, err, ErrInvalidState)

	bad := []byte(Solved().String())
	bad[0] = 'X'
	_, err = ParseState(string(bad))
	assert.ErrorIs(t, err, ErrInvalidState)

	// Two white stickers on one edge.
	bad = []byte(Solved().String())
	bad[19] = 'W'
	_, err = ParseState(string(bad))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestNet(t *testing.T) {
	lines := strings.Split(strings.TrimRight(Solved().Net(), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "        W W W", lines[0])
	assert.Equal(t, "O O O  G G G  R R R  B B B", lines[3])
	assert.Equal(t, "        Y Y Y", lines[8])
}
