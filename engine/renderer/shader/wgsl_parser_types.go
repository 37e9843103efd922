package shader

import "github.com/cogentcore/webgpu/wgpu"

// vertexFormat pairs a wgpu vertex format with its byte size.
type vertexFormat struct {
	format wgpu.VertexFormat
	size   uint64
}

// typeLayout is the host-shareable size and alignment of a WGSL type.
type typeLayout struct {
	size  uint64
	align uint64
}

// structField is one member of a parsed WGSL struct. location is -1 when the member has no @location.
type structField struct {
	name     string
	typeName string
	location int
	builtin  bool
}

// wgslStruct is a struct declaration found in WGSL source.
type wgslStruct struct {
	name   string
	fields []structField
}

// isVertexInput reports whether the struct feeds the vertex stage: it has @location members
// and no @builtin members, which would make it a stage output instead.
func (s wgslStruct) isVertexInput() bool {
	located := false
	for _, f := range s.fields {
		if f.builtin {
			return false
		}
		if f.location >= 0 {
			located = true
		}
	}
	return located
}
