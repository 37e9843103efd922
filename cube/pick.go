package cube

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// tieEpsilon is the distance under which two hits count as equally near.
const tieEpsilon = 1e-5

// Ray is a half-line used for picking. Direction need not be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the normalized direction.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Normalize().Mul(t))
}

// AABB is an axis aligned cube.
type AABB struct {
	Center  mgl32.Vec3
	SideLen float32
}

// BoxHit describes where a ray meets an AABB.
type BoxHit struct {
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// Intersect runs the slab test and returns the first surface point along the ray.
// A ray starting inside the box reports the exit point; boxes behind the origin miss.
//
// Parameters:
//   - r: the ray to test
//
// Returns:
//   - BoxHit: the distance, point and outward normal of the surface crossed
//   - bool: false on a miss
func (b AABB) Intersect(r Ray) (BoxHit, bool) {
	if r.Direction.Len() == 0 || b.SideLen <= 0 {
		return BoxHit{}, false
	}
	dir := r.Direction.Normalize()
	half := b.SideLen / 2

	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	nearAxis, farAxis := -1, -1
	for i := range 3 {
		lo, hi := b.Center[i]-half, b.Center[i]+half
		if mgl32.Abs(dir[i]) < 1e-9 {
			if r.Origin[i] < lo || r.Origin[i] > hi {
				return BoxHit{}, false
			}
			continue
		}
		t1 := (lo - r.Origin[i]) / dir[i]
		t2 := (hi - r.Origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, i
		}
		if t2 < tFar {
			tFar, farAxis = t2, i
		}
	}
	if tNear > tFar || tFar < 0 {
		return BoxHit{}, false
	}

	var hit BoxHit
	if tNear >= 0 {
		hit.Distance = tNear
		hit.Normal[nearAxis] = -sign(dir[nearAxis])
	} else {
		hit.Distance = tFar
		hit.Normal[farAxis] = sign(dir[farAxis])
	}
	hit.Point = r.Origin.Add(dir.Mul(hit.Distance))
	return hit, true
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// Geometry places the 27 cells in world space. Each cubie is a cube of side CellSize-Gap
// centered on a grid of spacing CellSize around Center.
type Geometry struct {
	Center   mgl32.Vec3
	CellSize float32
	Gap      float32
}

// DefaultGeometry is a unit-spaced cube centered at the origin.
func DefaultGeometry() Geometry {
	return Geometry{CellSize: 1, Gap: 0.04}
}

// Bounds returns the box enclosing the whole cube.
func (g Geometry) Bounds() AABB {
	return AABB{Center: g.Center, SideLen: 3 * g.CellSize}
}

// CellCenter returns the world space center of a cell.
func (g Geometry) CellCenter(c CellID) mgl32.Vec3 {
	x, y, z := c.Position()
	return g.Center.Add(mgl32.Vec3{float32(x), float32(y), float32(z)}.Mul(g.CellSize))
}

// CellBox returns the box of a single cubie.
func (g Geometry) CellBox(c CellID) AABB {
	return AABB{Center: g.CellCenter(c), SideLen: g.CellSize - g.Gap}
}

// Hit is the result of picking a cubie.
type Hit struct {
	Cell     CellID
	Face     Face
	Index    int
	Slot     int
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
}

// Pick returns the nearest visible cubie hit by r. Hits closer than tieEpsilon to each other
// resolve to the lower cell id. Face is NoFace and Slot is -1 when the ray enters a cubie through
// a face that carries no sticker.
//
// Parameters:
//   - r: the picking ray in world space
//
// Returns:
//   - Hit: the nearest hit; Cell is NoCell on a miss
//   - bool: false on a miss
func (g Geometry) Pick(r Ray) (Hit, bool) {
	miss := Hit{Cell: NoCell, Face: NoFace, Slot: -1}
	if _, ok := g.Bounds().Intersect(r); !ok {
		return miss, false
	}

	best := miss
	for id := range CellID(NumCells) {
		if id == CoreCell {
			continue
		}
		bh, ok := g.CellBox(id).Intersect(r)
		if !ok {
			continue
		}
		if best.Cell != NoCell && bh.Distance >= best.Distance-tieEpsilon {
			continue
		}
		best = Hit{Cell: id, Face: NoFace, Slot: -1, Distance: bh.Distance, Point: bh.Point, Normal: bh.Normal}
	}
	if best.Cell == NoCell {
		return miss, false
	}

	x, y, z := best.Cell.Position()
	n := vec3i{int(best.Normal[0]), int(best.Normal[1]), int(best.Normal[2])}
	if slot, ok := slotByKey[slotKey{vec3i{x, y, z}, n}]; ok {
		best.Slot = slot
		best.Face = SlotFace(slot)
		best.Index = slot % 9
	}
	return best, true
}

// DragTurn maps a drag across a picked sticker to the layer turn that moves the sticker along it.
//
// Parameters:
//   - h: a hit on a sticker
//   - drag: the drag direction in world space
//
// Returns:
//   - Turn: the implied quarter turn
//   - bool: false when the hit has no sticker or the drag lies along the face normal
func DragTurn(h Hit, drag mgl32.Vec3) (Turn, bool) {
	if h.Slot < 0 {
		return Turn{}, false
	}
	n := slotNormal[h.Slot]
	normalAxis := 0
	for i := range 3 {
		if n[i] != 0 {
			normalAxis = i
		}
	}

	dragAxis, best := -1, float32(1e-6)
	for i := range 3 {
		if i == normalAxis {
			continue
		}
		if v := mgl32.Abs(drag[i]); v > best {
			dragAxis, best = i, v
		}
	}
	if dragAxis < 0 {
		return Turn{}, false
	}

	axis := Axis(3 - normalAxis - dragAxis)
	var a vec3i
	a[axis] = 1
	// A counter-clockwise turn around +axis moves the sticker along axis x normal.
	v := a.cross(n)
	q := 1
	if float32(v[dragAxis])*drag[dragAxis] < 0 {
		q = -1
	}
	return Turn{Axis: axis, Layer: slotPos[h.Slot][axis], Quarters: q}, true
}
