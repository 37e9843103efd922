package mesh

import (
	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/animator"
	"github.com/go-gl/mathgl/mgl32"
)

// cubeMeshBuilder is the implementation of the CubeMeshBuilder interface.
type cubeMeshBuilder struct {
	geometry     cube.Geometry
	bodyColor    [3]float32
	stickerScale float32
	stickerLift  float32
}

// CubeMeshBuilder turns a cube state into drawable geometry: one dark body per visible cubie
// with a colored sticker on every outward face.
type CubeMeshBuilder interface {
	// Cubie builds a single cubie at the origin, stickered from state.
	//
	// Parameters:
	//   - id: the cell to build
	//   - state: the facelet state supplying sticker colors
	//
	// Returns:
	//   - *SimpleMesh: the cubie mesh in cell-local space
	Cubie(id cube.CellID, state cube.State) *SimpleMesh

	// Build assembles all 26 visible cubies in world space. Cells in the layer named by
	// progress are rotated by its angle.
	//
	// Parameters:
	//   - state: the facelet state
	//   - progress: the in-flight turn, nil when idle
	//
	// Returns:
	//   - *SimpleMesh: the combined mesh
	Build(state cube.State, progress *animator.Progress) *SimpleMesh

	// Geometry returns the cube placement used for building.
	//
	// Returns:
	//   - cube.Geometry: the geometry
	Geometry() cube.Geometry
}

var _ CubeMeshBuilder = &cubeMeshBuilder{}

// NewCubeMeshBuilder creates a builder for the default geometry.
//
// Parameters:
//   - options: options configuring the builder
//
// Returns:
//   - CubeMeshBuilder: the builder
func NewCubeMeshBuilder(options ...CubeMeshBuilderOption) CubeMeshBuilder {
	b := &cubeMeshBuilder{
		geometry:     cube.DefaultGeometry(),
		bodyColor:    [3]float32{0.05, 0.05, 0.05},
		stickerScale: 0.86,
		stickerLift:  0.002,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *cubeMeshBuilder) Geometry() cube.Geometry {
	return b.geometry
}

func (b *cubeMeshBuilder) Cubie(id cube.CellID, state cube.State) *SimpleMesh {
	side := b.geometry.CellSize - b.geometry.Gap
	m := CubeMesh(side, b.bodyColor)
	for _, slot := range cube.CellSlots(id) {
		n := cube.SlotFace(slot).Normal()
		m.quad(n.Mul(side/2+b.stickerLift), n, side*b.stickerScale/2, state.Color(slot).RGB())
	}
	return m
}

func (b *cubeMeshBuilder) Build(state cube.State, progress *animator.Progress) *SimpleMesh {
	transforms := animator.CellTransforms(b.geometry, progress)
	out := &SimpleMesh{
		// 26 bodies of 24 vertices plus 54 stickers of 4
		Vertices: make([]Vertex, 0, 26*24+cube.NumFacelets*4),
		Indices:  make([]uint32, 0, 26*36+cube.NumFacelets*6),
	}
	for id := range cube.CellID(cube.NumCells) {
		if id == cube.CoreCell {
			continue
		}
		c := b.Cubie(id, state)
		c.Transform(transforms[id])
		out.Append(c)
	}
	return out
}

// StickerCenter returns where the sticker of a slot sits in world space when no turn is in flight.
func StickerCenter(g cube.Geometry, slot int) mgl32.Vec3 {
	side := g.CellSize - g.Gap
	n := cube.SlotFace(slot).Normal()
	return g.CellCenter(cube.SlotCell(slot)).Add(n.Mul(side / 2))
}
