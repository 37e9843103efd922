package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("camera", WithIndexCount(36))
	assert.Equal(t, "camera", p.Label())
	assert.Equal(t, 36, p.IndexCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Empty(t, p.Buffers())
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())

	v, i := p.MeshCapacity()
	assert.Zero(t, v)
	assert.Zero(t, i)
}

func TestBindGroupProviderReleaseResets(t *testing.T) {
	p := NewBindGroupProvider("mesh")
	p.SetMeshBuffers(nil, 128, nil, 64)
	p.SetIndexCount(12)
	v, i := p.MeshCapacity()
	assert.Equal(t, uint64(128), v)
	assert.Equal(t, uint64(64), i)

	p.Release()
	v, i = p.MeshCapacity()
	assert.Zero(t, v)
	assert.Zero(t, i)
	assert.Zero(t, p.IndexCount())
}

func TestBuffersReturnsCopy(t *testing.T) {
	p := NewBindGroupProvider("copy", WithBuffer(3, nil))
	m := p.Buffers()
	assert.Len(t, m, 1)
	delete(m, 3)
	assert.Len(t, p.Buffers(), 1)
}

func TestNewBufferWrite(t *testing.T) {
	p := NewBindGroupProvider("camera")
	w := NewBufferWrite(p, 1, []float32{1, 2, 3, 4})
	assert.Equal(t, 1, w.Binding)
	assert.Zero(t, w.Offset)
	assert.Len(t, w.Data, 16)
	assert.Same(t, p, w.Provider)
}
