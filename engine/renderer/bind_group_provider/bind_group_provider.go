package bind_group_provider

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	mu *sync.Mutex

	label string

	// The following fields are GPU resources populated by the Renderer, not by user creation.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the uniform and storage buffers keyed by binding index.
	buffers map[int]*wgpu.Buffer

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	// vertexSize and indexSize are the byte capacities of the mesh buffers, used to decide
	// between an in-place write and a reallocation when a mesh changes.
	vertexSize uint64
	indexSize  uint64
	indexCount int
}

// BindGroupProvider holds the GPU resources a drawable needs: a bind group with its buffers and
// optionally a vertex/index buffer pair. Components create a provider, the Renderer fills it in
// with InitBindGroup and InitMeshBuffers, and draw calls read it back.
type BindGroupProvider interface {
	// Release releases every GPU resource held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group, or nil before initialization.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout, or nil before initialization.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer for a binding.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns a copy of the buffers keyed by binding index.
	//
	// Returns:
	//   - map[int]*wgpu.Buffer: the buffers
	Buffers() map[int]*wgpu.Buffer

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// MeshCapacity returns the byte sizes of the vertex and index buffers.
	//
	// Returns:
	//   - uint64: the vertex buffer size
	//   - uint64: the index buffer size
	MeshCapacity() (uint64, uint64)

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup stores the bind group after GPU initialization.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the bind group layout after GPU initialization.
	//
	// Parameters:
	//   - bgl: the created bind group layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores the buffer for a binding.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetMeshBuffers stores a vertex/index buffer pair, releasing any previous pair.
	//
	// Parameters:
	//   - vertex: the vertex buffer
	//   - vertexSize: the vertex buffer size in bytes
	//   - index: the index buffer
	//   - indexSize: the index buffer size in bytes
	SetMeshBuffers(vertex *wgpu.Buffer, vertexSize uint64, index *wgpu.Buffer, indexSize uint64)

	// SetIndexCount sets the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider.
//
// Parameters:
//   - label: the debug label
//   - options: options to configure the provider
//
// Returns:
//   - BindGroupProvider: the provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		mu:      &sync.Mutex{},
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[int]*wgpu.Buffer, len(p.buffers))
	for k, v := range p.buffers {
		out[k] = v
	}
	return out
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexBuffer
}

func (p *bindGroupProvider) MeshCapacity() (uint64, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vertexSize, p.indexSize
}

func (p *bindGroupProvider) IndexCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexCount
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetMeshBuffers(vertex *wgpu.Buffer, vertexSize uint64, index *wgpu.Buffer, indexSize uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.vertexBuffer != nil && p.vertexBuffer != vertex {
		p.vertexBuffer.Release()
	}
	if p.indexBuffer != nil && p.indexBuffer != index {
		p.indexBuffer.Release()
	}
	p.vertexBuffer, p.vertexSize = vertex, vertexSize
	p.indexBuffer, p.indexSize = index, indexSize
}

func (p *bindGroupProvider) SetIndexCount(count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.indexCount = count
}

func (p *bindGroupProvider) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
	p.vertexSize, p.indexSize, p.indexCount = 0, 0, 0
}
