package animator

import (
	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// CellTransforms returns the model matrix of every cell. Cells in the turning layer are rotated
// around the cube center by the in-flight angle; the rest sit at their grid position.
//
// Parameters:
//   - g: the cube geometry
//   - p: the active progress, nil when nothing is animating
//
// Returns:
//   - [cube.NumCells]mgl32.Mat4: per-cell model matrices indexed by cell id
func CellTransforms(g cube.Geometry, p *Progress) [cube.NumCells]mgl32.Mat4 {
	var out [cube.NumCells]mgl32.Mat4
	var turning mgl32.Mat4
	if p != nil {
		center := mgl32.Translate3D(g.Center[0], g.Center[1], g.Center[2])
		back := mgl32.Translate3D(-g.Center[0], -g.Center[1], -g.Center[2])
		turning = center.Mul4(common.RotateAxis(int(p.Turn.Axis), p.Angle)).Mul4(back)
	}
	for id := range cube.CellID(cube.NumCells) {
		c := g.CellCenter(id)
		m := mgl32.Translate3D(c[0], c[1], c[2])
		if p != nil && InTurningLayer(id, p.Turn) {
			m = turning.Mul4(m)
		}
		out[id] = m
	}
	return out
}

// InTurningLayer reports whether a cell belongs to the layer moved by t.
func InTurningLayer(id cube.CellID, t cube.Turn) bool {
	x, y, z := id.Position()
	return [3]int{x, y, z}[t.Axis] == t.Layer
}
