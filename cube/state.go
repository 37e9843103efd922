package cube

import (
	"fmt"
	"strings"
)

// State holds the sticker found in every slot. Slots are ordered U, D, F, B, R, L with nine
// row-major facelets per face:
//
//	0 1 2
//	3 4 5
//	6 7 8
type State [NumFacelets]Sticker

// Solved returns the identity state.
func Solved() State {
	var s State
	for i := range s {
		s[i] = Sticker(i)
	}
	return s
}

// Color returns the sticker color at a slot.
func (s State) Color(slot int) Color { return s[slot].Color() }

// Facelet returns the color at face f, facelet index idx (0..8).
func (s State) Facelet(f Face, idx int) Color { return s[SlotIndex(f, idx)].Color() }

// IsSolved reports whether every face shows a single color, in any orientation.
func (s State) IsSolved() bool {
	for f := range 6 {
		c := s[f*9].Color()
		for i := 1; i < 9; i++ {
			if s[f*9+i].Color() != c {
				return false
			}
		}
	}
	return true
}

// IsIdentity reports whether every sticker is in its home slot.
func (s State) IsIdentity() bool { return s == Solved() }

// ApplyTurn returns the state after rotating one layer.
func (s State) ApplyTurn(t Turn) State {
	if !t.Valid() {
		return s
	}
	table := &turnTables[t.Axis][t.Layer+1][quarterIndex(t.Quarters)]
	var out State
	for dst, src := range table {
		out[dst] = s[src]
	}
	return out
}

// ApplyMove returns the state after a notation move.
func (s State) ApplyMove(m Move) State {
	for _, t := range m.Turns() {
		s = s.ApplyTurn(t)
	}
	return s
}

// ApplyMoves returns the state after applying moves in order.
func (s State) ApplyMoves(moves []Move) State {
	for _, m := range moves {
		s = s.ApplyMove(m)
	}
	return s
}

// String renders the 54 colors in slot order, one letter per sticker.
func (s State) String() string {
	var sb strings.Builder
	sb.Grow(NumFacelets)
	for _, st := range s {
		sb.WriteByte(colorLetters[st.Color()])
	}
	return sb.String()
}

// Net renders the unfolded cube:
//
//	    U
//	L F R B
//	    D
func (s State) Net() string {
	var sb strings.Builder
	row := func(f Face, r int) {
		for c := range 3 {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(s.Facelet(f, r*3+c).String())
		}
	}
	pad := strings.Repeat(" ", 8)
	for r := range 3 {
		sb.WriteString(pad)
		row(FaceU, r)
		sb.WriteByte('\n')
	}
	for r := range 3 {
		for i, f := range []Face{FaceL, FaceF, FaceR, FaceB} {
			if i > 0 {
				sb.WriteString("  ")
			}
			row(f, r)
		}
		sb.WriteByte('\n')
	}
	for r := range 3 {
		sb.WriteString(pad)
		row(FaceD, r)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseState rebuilds a state from 54 color letters in slot order (the format of State.String).
// Every cubie is identified from its color set, so the result is validated before it is returned.
//
// Parameters:
//   - colors: 54 letters from W Y G B R O, whitespace ignored
//
// Returns:
//   - State: the reconstructed state
//   - error: ErrInvalidState for bad input or a state that violates a cube invariant
func ParseState(colors string) (State, error) {
	colors = strings.Join(strings.Fields(colors), "")
	if len(colors) != NumFacelets {
		return State{}, fmt.Errorf("%w: want %d colors, got %d", ErrInvalidState, NumFacelets, len(colors))
	}
	var cs [NumFacelets]Color
	for i := range NumFacelets {
		c, ok := parseColor(colors[i])
		if !ok {
			return State{}, fmt.Errorf("%w: unknown color %q at slot %d", ErrInvalidState, colors[i], i)
		}
		cs[i] = c
	}

	var s State
	for cell := range NumCells {
		slots := cellSlots[cell]
		if len(slots) == 0 {
			continue
		}
		var home vec3i
		for _, slot := range slots {
			home = home.add(faceNormals[cs[slot]])
		}
		for _, slot := range slots {
			n := faceNormals[cs[slot]]
			st, ok := slotByKey[slotKey{home, n}]
			if !ok {
				return State{}, fmt.Errorf("%w: no cubie has colors of cell %d", ErrInvalidState, cell)
			}
			s[slot] = Sticker(st)
		}
	}
	if err := Validate(s); err != nil {
		return State{}, err
	}
	return s, nil
}
