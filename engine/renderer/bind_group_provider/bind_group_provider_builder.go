package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer sets a buffer for a specific binding index.
//
// Parameters:
//   - binding: the binding index
//   - buf: the buffer to bind there
//
// Returns:
//   - BindGroupProviderOption: a function that stores the buffer
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}

// WithIndexCount presets the number of indices drawn from the provider's index buffer.
//
// Parameters:
//   - count: the index count
//
// Returns:
//   - BindGroupProviderOption: a function that sets the index count
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}
