package cube

import "github.com/go-gl/mathgl/mgl32"

// NumFacelets is the number of sticker slots on a 3x3 cube.
const NumFacelets = 54

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

var colorLetters = [6]byte{'W', 'Y', 'G', 'B', 'R', 'O'}

func (c Color) String() string {
	if int(c) < len(colorLetters) {
		return string(colorLetters[c])
	}
	return "?"
}

// RGB returns the display color used by the renderer.
func (c Color) RGB() [3]float32 {
	switch c {
	case White:
		return [3]float32{0.95, 0.95, 0.95}
	case Yellow:
		return [3]float32{1.0, 0.84, 0.0}
	case Green:
		return [3]float32{0.0, 0.62, 0.38}
	case Blue:
		return [3]float32{0.0, 0.27, 0.68}
	case Red:
		return [3]float32{0.72, 0.07, 0.2}
	case Orange:
		return [3]float32{1.0, 0.35, 0.0}
	}
	return [3]float32{0.05, 0.05, 0.05}
}

func parseColor(b byte) (Color, bool) {
	for i, l := range colorLetters {
		if l == b {
			return Color(i), true
		}
	}
	return 0, false
}

// Face identifies one of the six outer faces.
type Face byte

const (
	FaceU Face = 0
	FaceD Face = 1
	FaceF Face = 2
	FaceB Face = 3
	FaceR Face = 4
	FaceL Face = 5

	// NoFace marks a pick that landed on an interior cubie face.
	NoFace Face = 255
)

const faceLetters = "UDFBRL"

func (f Face) String() string {
	if int(f) < len(faceLetters) {
		return faceLetters[f : f+1]
	}
	return "-"
}

// HomeColor is the color of the face in the solved state.
func (f Face) HomeColor() Color { return Color(f) }

// Normal returns the outward unit normal of the face in world space (+X right, +Y up, +Z front).
func (f Face) Normal() mgl32.Vec3 {
	n := faceNormals[f]
	return mgl32.Vec3{float32(n[0]), float32(n[1]), float32(n[2])}
}

// Sticker identifies a physical sticker by the slot it occupies in the solved state.
type Sticker uint8

// Face is the face the sticker belongs to when solved.
func (s Sticker) Face() Face { return Face(s / 9) }

// Color is the color printed on the sticker.
func (s Sticker) Color() Color { return Color(s / 9) }

// CellID identifies one of the 27 cubie cells; negative values mean no cell.
type CellID int

const (
	NoCell   CellID = -1
	CoreCell CellID = 13
	NumCells        = 27
)

// Position returns the cell coordinates, each in {-1, 0, 1}.
func (c CellID) Position() (x, y, z int) {
	id := int(c)
	return id%3 - 1, (id/3)%3 - 1, id/9 - 1
}

func cellAt(p vec3i) CellID {
	return CellID((p[0] + 1) + 3*(p[1]+1) + 9*(p[2]+1))
}

type vec3i [3]int

func (v vec3i) dot(o vec3i) int { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

func (v vec3i) cross(o vec3i) vec3i {
	return vec3i{v[1]*o[2] - v[2]*o[1], v[2]*o[0] - v[0]*o[2], v[0]*o[1] - v[1]*o[0]}
}

func (v vec3i) neg() vec3i { return vec3i{-v[0], -v[1], -v[2]} }

func (v vec3i) add(o vec3i) vec3i { return vec3i{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// rotate turns v by quarters*90 degrees counter-clockwise around the positive axis.
func (v vec3i) rotate(axis Axis, quarters int) vec3i {
	q := ((quarters % 4) + 4) % 4
	for range q {
		switch axis {
		case AxisX:
			v = vec3i{v[0], -v[2], v[1]}
		case AxisY:
			v = vec3i{v[2], v[1], -v[0]}
		case AxisZ:
			v = vec3i{-v[1], v[0], v[2]}
		}
	}
	return v
}

var faceNormals = [6]vec3i{
	FaceU: {0, 1, 0},
	FaceD: {0, -1, 0},
	FaceF: {0, 0, 1},
	FaceB: {0, 0, -1},
	FaceR: {1, 0, 0},
	FaceL: {-1, 0, 0},
}

type slotKey struct {
	pos, normal vec3i
}

var (
	slotPos    [NumFacelets]vec3i
	slotNormal [NumFacelets]vec3i
	slotByKey  = make(map[slotKey]int, NumFacelets)
	// cellSlots lists the sticker slots carried by each cell.
	cellSlots [NumCells][]int
)

// faceletPosition places the sticker at row r, column c of face f, reading each face from outside:
// U with F at the bottom, D with F at the top, the side faces with U at the top.
func faceletPosition(f Face, r, c int) vec3i {
	switch f {
	case FaceU:
		return vec3i{c - 1, 1, r - 1}
	case FaceD:
		return vec3i{c - 1, -1, 1 - r}
	case FaceF:
		return vec3i{c - 1, 1 - r, 1}
	case FaceB:
		return vec3i{1 - c, 1 - r, -1}
	case FaceR:
		return vec3i{1, 1 - r, 1 - c}
	default:
		return vec3i{-1, 1 - r, c - 1}
	}
}

func init() {
	for slot := range NumFacelets {
		f := Face(slot / 9)
		idx := slot % 9
		p := faceletPosition(f, idx/3, idx%3)
		slotPos[slot] = p
		slotNormal[slot] = faceNormals[f]
		slotByKey[slotKey{p, faceNormals[f]}] = slot
		cell := cellAt(p)
		cellSlots[cell] = append(cellSlots[cell], slot)
	}
	buildTurnTables()
}

// SlotIndex returns the slot index for a face and its row-major facelet index.
func SlotIndex(f Face, idx int) int { return int(f)*9 + idx }

// SlotCell returns the cell that carries a sticker slot.
func SlotCell(slot int) CellID { return cellAt(slotPos[slot]) }

// CellSlots returns the sticker slots of a cell, in slot order.
func CellSlots(c CellID) []int {
	if c < 0 || int(c) >= NumCells {
		return nil
	}
	return append([]int(nil), cellSlots[c]...)
}

// SlotFace returns the face a slot lies on.
func SlotFace(slot int) Face { return Face(slot / 9) }
