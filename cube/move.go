package cube

import (
	"fmt"
	"strings"
)

// Axis is a principal rotation axis: X points right, Y up and Z out of the front face.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "?"
}

// Turn rotates a single layer of the cube.
// Layer is the coordinate of the layer on Axis (-1, 0 or 1). Quarters is 1 or -1 for a quarter turn
// counter-clockwise or clockwise when looking from the positive end of the axis, or 2 for a half turn.
type Turn struct {
	Axis     Axis
	Layer    int
	Quarters int
}

// Valid reports whether the turn names an existing layer and amount.
func (t Turn) Valid() bool {
	if t.Axis > AxisZ || t.Layer < -1 || t.Layer > 1 {
		return false
	}
	return t.Quarters == 1 || t.Quarters == -1 || t.Quarters == 2
}

// Inverse returns the turn that undoes t.
func (t Turn) Inverse() Turn {
	if t.Quarters == 2 {
		return t
	}
	return Turn{Axis: t.Axis, Layer: t.Layer, Quarters: -t.Quarters}
}

func (t Turn) String() string {
	if !t.Valid() {
		return fmt.Sprintf("invalid(axis=%d layer=%d quarters=%d)", t.Axis, t.Layer, t.Quarters)
	}
	return MoveForTurn(t).String()
}

// turnTables[axis][layer+1][quarterIndex] holds the source slot for every destination slot.
var turnTables [3][3][3][NumFacelets]uint8

func quarterIndex(q int) int {
	switch q {
	case 1:
		return 0
	case -1:
		return 1
	}
	return 2
}

func buildTurnTables() {
	for axis := AxisX; axis <= AxisZ; axis++ {
		for layer := -1; layer <= 1; layer++ {
			for _, q := range []int{1, -1, 2} {
				table := &turnTables[axis][layer+1][quarterIndex(q)]
				for slot := range NumFacelets {
					table[slot] = uint8(slot)
				}
				for src := range NumFacelets {
					if slotPos[src][axis] != layer {
						continue
					}
					dst := slotByKey[slotKey{slotPos[src].rotate(axis, q), slotNormal[src].rotate(axis, q)}]
					table[dst] = uint8(src)
				}
			}
		}
	}
}

// moveDef describes a notation letter as a set of layers and the quarter direction of its clockwise form.
type moveDef struct {
	axis   Axis
	layers []int
	cw     int
}

var moveDefs = map[byte]moveDef{
	'U': {AxisY, []int{1}, -1},
	'D': {AxisY, []int{-1}, 1},
	'R': {AxisX, []int{1}, -1},
	'L': {AxisX, []int{-1}, 1},
	'F': {AxisZ, []int{1}, -1},
	'B': {AxisZ, []int{-1}, 1},
	'M': {AxisX, []int{0}, 1},
	'E': {AxisY, []int{0}, 1},
	'S': {AxisZ, []int{0}, -1},
	'x': {AxisX, []int{-1, 0, 1}, -1},
	'y': {AxisY, []int{-1, 0, 1}, -1},
	'z': {AxisZ, []int{-1, 0, 1}, -1},
}

// Move is a move in standard notation: outer faces U D F B R L, slices M E S and
// whole-cube rotations x y z, turned clockwise (1), counter-clockwise (-1) or twice (2).
type Move struct {
	Base   byte
	Amount int
}

// Turns expands the move into its layer turns.
func (m Move) Turns() []Turn {
	def, ok := moveDefs[m.Base]
	if !ok {
		return nil
	}
	q := 2
	if m.Amount != 2 {
		q = def.cw * m.Amount
	}
	turns := make([]Turn, 0, len(def.layers))
	for _, l := range def.layers {
		turns = append(turns, Turn{Axis: def.axis, Layer: l, Quarters: q})
	}
	return turns
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	if m.Amount == 2 {
		return m
	}
	return Move{Base: m.Base, Amount: -m.Amount}
}

func (m Move) String() string {
	switch m.Amount {
	case -1:
		return string(m.Base) + "'"
	case 2:
		return string(m.Base) + "2"
	}
	return string(m.Base)
}

// MoveForTurn names a single layer turn in notation. Invalid turns yield the zero Move.
func MoveForTurn(t Turn) Move {
	if !t.Valid() {
		return Move{}
	}
	var base byte
	switch t.Axis {
	case AxisX:
		base = [3]byte{'L', 'M', 'R'}[t.Layer+1]
	case AxisY:
		base = [3]byte{'D', 'E', 'U'}[t.Layer+1]
	default:
		base = [3]byte{'B', 'S', 'F'}[t.Layer+1]
	}
	if t.Quarters == 2 {
		return Move{Base: base, Amount: 2}
	}
	return Move{Base: base, Amount: t.Quarters * moveDefs[base].cw}
}

// ParseMove parses a single notation token such as "R", "U'", "F2" or "x'".
//
// Parameters:
//   - s: the token to parse
//
// Returns:
//   - Move: the parsed move
//   - error: ErrInvalidMove if the token is not recognised
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Move{}, fmt.Errorf("%w: empty move", ErrInvalidMove)
	}
	base := s[0]
	if _, ok := moveDefs[base]; !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	switch s[1:] {
	case "":
		return Move{Base: base, Amount: 1}, nil
	case "'", "’":
		return Move{Base: base, Amount: -1}, nil
	case "2", "2'":
		return Move{Base: base, Amount: 2}, nil
	}
	return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
}

// ParseMoves parses a whitespace separated move sequence.
func ParseMoves(s string) ([]Move, error) {
	fields := strings.Fields(s)
	moves := make([]Move, 0, len(fields))
	for _, f := range fields {
		m, err := ParseMove(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMoves renders a move sequence in notation separated by spaces.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// InvertSequence returns the sequence that undoes moves.
func InvertSequence(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// Cell rotations of the play keymap. Columns are the X layers from left to right and turn
// "forward" when the front stickers travel up. Rows are the Y layers from top to bottom and
// turn "forward" when the front stickers travel right.
var (
	Column1Forward   = Turn{Axis: AxisX, Layer: -1, Quarters: -1}
	Column1Backwards = Turn{Axis: AxisX, Layer: -1, Quarters: 1}
	Column2Forward   = Turn{Axis: AxisX, Layer: 0, Quarters: -1}
	Column2Backwards = Turn{Axis: AxisX, Layer: 0, Quarters: 1}
	Column3Forward   = Turn{Axis: AxisX, Layer: 1, Quarters: -1}
	Column3Backwards = Turn{Axis: AxisX, Layer: 1, Quarters: 1}
	Row1Forward      = Turn{Axis: AxisY, Layer: 1, Quarters: 1}
	Row1Backwards    = Turn{Axis: AxisY, Layer: 1, Quarters: -1}
	Row2Forward      = Turn{Axis: AxisY, Layer: 0, Quarters: 1}
	Row2Backwards    = Turn{Axis: AxisY, Layer: 0, Quarters: -1}
	Row3Forward      = Turn{Axis: AxisY, Layer: -1, Quarters: 1}
	Row3Backwards    = Turn{Axis: AxisY, Layer: -1, Quarters: -1}
)
