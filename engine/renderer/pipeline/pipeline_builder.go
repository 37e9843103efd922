package pipeline

import (
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption configures a Pipeline in NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithShaders sets the vertex and fragment stages.
//
// Parameters:
//   - vertex: the vertex stage
//   - fragment: the fragment stage
//
// Returns:
//   - PipelineBuilderOption: a function that sets both stages
func WithShaders(vertex, fragment shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = vertex
		p.fragmentShader = fragment
	}
}

// WithVertexShader sets only the vertex stage.
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader sets only the fragment stage.
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepth sets depth testing and depth writes. Both are on by default.
//
// Parameters:
//   - test: compare fragments against the depth buffer
//   - write: store the depth of passing fragments
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth state
func WithDepth(test, write bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = test
		p.depthWriteEnabled = write
	}
}

// WithDepthBias offsets fragment depth, e.g. to keep stickers in front of the cubie body.
//
// Parameters:
//   - bias: the constant bias
//   - slopeScale: the bias scaled by the polygon slope
//
// Returns:
//   - PipelineBuilderOption: a function that sets the bias
func WithDepthBias(bias int32, slopeScale float32) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthBias = bias
		p.depthBiasSlopeScale = slopeScale
	}
}

// WithBlend enables blending with state. A nil state disables blending.
//
// Parameters:
//   - state: the blend state, nil for opaque output
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend state
func WithBlend(state *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = state != nil
		if state != nil {
			p.blendState = state
		}
	}
}

// WithRasterizer sets face culling and the winding that counts as front facing.
// The defaults cull nothing with counter-clockwise fronts.
//
// Parameters:
//   - cull: the faces to discard
//   - front: the front face winding
//
// Returns:
//   - PipelineBuilderOption: a function that sets the rasterizer state
func WithRasterizer(cull wgpu.CullMode, front wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = cull
		p.frontFace = front
	}
}

// WithTopology sets the primitive topology. The default is a triangle list.
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithWriteMask limits the color channels the pipeline writes.
func WithWriteMask(mask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = mask
	}
}
