package cube

import "fmt"

// Validate checks that s is reachable by legal moves from the solved cube:
//   - every sticker appears once and sits on a cubie of its own kind;
//   - the stickers of each cubie travel together and corners are not mirrored;
//   - the centers form a proper rotation of the solved frame;
//   - corner twist sums to 0 mod 3 and edge flip sums to 0 mod 2;
//   - the combined corner, edge and center permutation parity is even.
func Validate(s State) error {
	var seen [NumFacelets]bool
	for slot, st := range s {
		if int(st) >= NumFacelets {
			return fmt.Errorf("%w: sticker %d out of range at slot %d", ErrInvalidState, st, slot)
		}
		if seen[st] {
			return fmt.Errorf("%w: sticker %d appears twice", ErrInvalidState, st)
		}
		seen[st] = true
	}

	// home[cell] is the cell whose stickers now sit on cell.
	var home [NumCells]CellID
	for cell := range NumCells {
		slots := cellSlots[cell]
		if len(slots) == 0 {
			home[cell] = NoCell
			continue
		}
		first := SlotCell(int(s[slots[0]]))
		for _, slot := range slots {
			if SlotCell(int(s[slot])) != first {
				return fmt.Errorf("%w: cell %d mixes stickers of different cubies", ErrInvalidState, cell)
			}
		}
		if len(cellSlots[first]) != len(slots) {
			return fmt.Errorf("%w: cell %d holds a cubie of the wrong kind", ErrInvalidState, cell)
		}
		home[cell] = first
	}

	if err := validateCenters(s); err != nil {
		return err
	}
	if err := validateCorners(s); err != nil {
		return err
	}
	if err := validateEdges(s); err != nil {
		return err
	}

	var parity [4]int
	for kind := 1; kind <= 3; kind++ {
		parity[kind] = permutationParity(home[:], kind)
	}
	if (parity[1]+parity[2]+parity[3])%2 != 0 {
		return fmt.Errorf("%w: odd permutation parity (centers %d, edges %d, corners %d)",
			ErrInvalidState, parity[1], parity[2], parity[3])
	}
	return nil
}

// validateCenters requires the map from slot normal to home normal to be a proper rotation.
func validateCenters(s State) error {
	var mapped [6]vec3i
	for f := range 6 {
		mapped[f] = slotNormal[s[SlotIndex(Face(f), 4)]]
	}
	for _, pair := range [][2]Face{{FaceU, FaceD}, {FaceF, FaceB}, {FaceR, FaceL}} {
		if mapped[pair[0]] != mapped[pair[1]].neg() {
			return fmt.Errorf("%w: centers %s and %s are not opposite", ErrInvalidState, pair[0], pair[1])
		}
	}
	// R x U = F in the solved frame, so the images must obey the same handedness.
	if mapped[FaceR].cross(mapped[FaceU]) != mapped[FaceF] {
		return fmt.Errorf("%w: centers are mirrored", ErrInvalidState)
	}
	return nil
}

func validateCorners(s State) error {
	twist := 0
	for cell := range NumCells {
		slots := cellSlots[cell]
		if len(slots) != 3 {
			continue
		}
		p := slotPos[slots[0]]

		// Chirality: slot normals ordered like their stickers' home normals must keep orientation.
		a, b, c := slotNormal[slots[0]], slotNormal[slots[1]], slotNormal[slots[2]]
		ha, hb, hc := slotNormal[s[slots[0]]], slotNormal[s[slots[1]]], slotNormal[s[slots[2]]]
		if a.cross(b).dot(c) != ha.cross(hb).dot(hc) {
			return fmt.Errorf("%w: corner at cell %d is mirrored", ErrInvalidState, cell)
		}

		var ref, at vec3i
		for _, slot := range slots {
			n := slotNormal[slot]
			if n[1] != 0 {
				ref = n
			}
			hf := s[slot].Face()
			if hf == FaceU || hf == FaceD {
				at = n
			}
		}
		switch {
		case at == ref:
		case ref.cross(at).dot(p) < 0:
			twist++
		default:
			twist += 2
		}
	}
	if twist%3 != 0 {
		return fmt.Errorf("%w: corner twist %d is not a multiple of 3", ErrInvalidState, twist)
	}
	return nil
}

func validateEdges(s State) error {
	flip := 0
	for cell := range NumCells {
		slots := cellSlots[cell]
		if len(slots) != 2 {
			continue
		}
		if primaryNormal(slotNormal[slots[0]], slotNormal[slots[1]]) != primaryStickerNormal(s, slots) {
			flip++
		}
	}
	if flip%2 != 0 {
		return fmt.Errorf("%w: odd number of flipped edges", ErrInvalidState)
	}
	return nil
}

// primaryNormal picks the U/D facet of an edge, or its F/B facet for middle layer edges.
func primaryNormal(a, b vec3i) vec3i {
	for _, axis := range []int{1, 2} {
		if a[axis] != 0 {
			return a
		}
		if b[axis] != 0 {
			return b
		}
	}
	return a
}

// primaryStickerNormal returns the slot normal under the edge's U/D sticker, or its F/B sticker.
func primaryStickerNormal(s State, slots []int) vec3i {
	for _, faces := range [][2]Face{{FaceU, FaceD}, {FaceF, FaceB}} {
		for _, slot := range slots {
			if f := s[slot].Face(); f == faces[0] || f == faces[1] {
				return slotNormal[slot]
			}
		}
	}
	return slotNormal[slots[0]]
}

// permutationParity returns the parity of the cell permutation restricted to cubies carrying
// kind stickers (1 centers, 2 edges, 3 corners).
func permutationParity(home []CellID, kind int) int {
	var visited [NumCells]bool
	parity := 0
	for start := range NumCells {
		if visited[start] || len(cellSlots[start]) != kind {
			continue
		}
		length := 0
		for c := CellID(start); !visited[c]; c = home[c] {
			visited[c] = true
			length++
		}
		parity += length - 1
	}
	return parity % 2
}
