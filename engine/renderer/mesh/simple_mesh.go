package mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex matches the VertexInput struct of the cube shader: three tightly packed vec3<f32>.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [3]float32
}

// VertexSize is the byte stride of a Vertex.
const VertexSize = 36

// SimpleMesh is CPU-side triangle list geometry with uint32 indices.
type SimpleMesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Uploader copies mesh bytes into GPU buffers. renderer.Renderer satisfies it.
type Uploader interface {
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
}

// VertexBytes returns the vertex data as raw bytes. The slice aliases the mesh.
func (m *SimpleMesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the index data as raw bytes. The slice aliases the mesh.
func (m *SimpleMesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// TriangleCount returns the number of triangles in the mesh.
func (m *SimpleMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that the index list forms whole triangles and stays within the vertex list.
func (m *SimpleMesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh has %d indices, not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("index %d references vertex %d of %d", i, idx, len(m.Vertices))
		}
	}
	return nil
}

// Append adds the geometry of o to m, rebasing its indices.
func (m *SimpleMesh) Append(o *SimpleMesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, o.Vertices...)
	for _, idx := range o.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Transform applies a rigid transform in place. Normals are rotated by the upper 3x3 block.
func (m *SimpleMesh) Transform(t mgl32.Mat4) {
	rot := t.Mat3()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		p := t.Mul4x1(mgl32.Vec3(v.Position).Vec4(1))
		v.Position = [3]float32(p.Vec3())
		n := rot.Mul3x1(mgl32.Vec3(v.Normal))
		if n.Len() > 0 {
			n = n.Normalize()
		}
		v.Normal = [3]float32(n)
	}
}

// Upload writes the mesh into provider's GPU buffers.
//
// Parameters:
//   - u: the renderer doing the upload
//   - provider: the provider that owns the buffers
//
// Returns:
//   - error: a validation or upload error
func (m *SimpleMesh) Upload(u Uploader, provider bind_group_provider.BindGroupProvider) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return u.InitMeshBuffers(provider, m.VertexBytes(), m.IndexBytes(), len(m.Indices))
}

// quad appends a square facing normal, centered at center, wound counter-clockwise when seen
// from the side the normal points to.
func (m *SimpleMesh) quad(center, normal mgl32.Vec3, half float32, color [3]float32) {
	u := perpendicular(normal).Mul(half)
	v := normal.Cross(u)
	base := uint32(len(m.Vertices))
	for _, corner := range [4]mgl32.Vec3{
		center.Sub(u).Sub(v),
		center.Add(u).Sub(v),
		center.Add(u).Add(v),
		center.Sub(u).Add(v),
	} {
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32(corner),
			Normal:   [3]float32(normal),
			Color:    color,
		})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// perpendicular returns a unit vector orthogonal to a unit normal.
func perpendicular(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if mgl32.Abs(n[0]) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return axis.Sub(n.Mul(axis.Dot(n))).Normalize()
}

// Square returns a square of side size in the XY plane facing +Z.
func Square(size float32, color [3]float32) *SimpleMesh {
	m := &SimpleMesh{}
	m.quad(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, size/2, color)
	return m
}

// Triangle returns an equilateral triangle of side size in the XY plane facing +Z, centered on
// its centroid.
func Triangle(size float32, color [3]float32) *SimpleMesh {
	h := size * 0.8660254 // sqrt(3)/2
	n := [3]float32{0, 0, 1}
	return &SimpleMesh{
		Vertices: []Vertex{
			{Position: [3]float32{0, 2 * h / 3, 0}, Normal: n, Color: color},
			{Position: [3]float32{-size / 2, -h / 3, 0}, Normal: n, Color: color},
			{Position: [3]float32{size / 2, -h / 3, 0}, Normal: n, Color: color},
		},
		Indices: []uint32{0, 1, 2},
	}
}

// CubeMesh returns an axis-aligned cube of side size centered at the origin, with four vertices
// per face so each face keeps a flat normal.
func CubeMesh(size float32, color [3]float32) *SimpleMesh {
	m := &SimpleMesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	half := size / 2
	for _, n := range axisNormals {
		m.quad(n.Mul(half), n, half, color)
	}
	return m
}

var axisNormals = [6]mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}
