package bind_group_provider

import "github.com/Carmen-Shannon/oxy-rubiks/common"

// BufferWrite is one queued upload into a binding of a provider, starting Offset bytes in.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// NewBufferWrite packs data for a write at the start of the binding.
//
// Parameters:
//   - provider: the target provider
//   - binding: the binding index within the provider
//   - data: the values to upload, laid out as the shader expects
//
// Returns:
//   - BufferWrite: the write
func NewBufferWrite[T any](provider BindGroupProvider, binding int, data []T) BufferWrite {
	return BufferWrite{Provider: provider, Binding: binding, Data: common.SliceToBytes(data)}
}
