package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeShaders(t *testing.T) (shader.Shader, shader.Shader) {
	t.Helper()
	vs, err := shader.NewShaderFromSource("vs", shader.ShaderTypeVertex, shader.CubeSource)
	require.NoError(t, err)
	fs, err := shader.NewShaderFromSource("fs", shader.ShaderTypeFragment, shader.CubeSource)
	require.NoError(t, err)
	return vs, fs
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("cube")
	assert.Equal(t, "cube", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.NotNil(t, p.BlendState())
	assert.Nil(t, p.RenderPipeline())
	assert.NotPanics(t, p.Release)
}

func TestPipelineOptions(t *testing.T) {
	vs, fs := cubeShaders(t)
	p := NewPipeline("cube",
		WithShaders(vs, fs),
		WithRasterizer(wgpu.CullModeBack, wgpu.FrontFaceCW),
		WithDepthBias(2, 1.5),
		WithBlend(&wgpu.BlendState{}),
		WithDepth(true, false),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
	assert.Nil(t, p.Shader(shader.ShaderType(7)))
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(1.5), p.DepthBiasSlopeScale())
	assert.True(t, p.BlendEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
	assert.Equal(t, &wgpu.BlendState{}, p.BlendState())
	assert.NoError(t, p.Validate())

	opaque := NewPipeline("opaque", WithBlend(&wgpu.BlendState{}), WithBlend(nil))
	assert.False(t, opaque.BlendEnabled())
	assert.NotNil(t, opaque.BlendState(), "disabling blending keeps the last state")
}

func TestPipelineValidate(t *testing.T) {
	vs, fs := cubeShaders(t)
	noInput, err := shader.NewShaderFromSource("bare", shader.ShaderTypeVertex,
		"@vertex fn vs(@builtin(vertex_index) i: u32) -> @builtin(position) vec4f { return vec4f(); }")
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []PipelineBuilderOption
	}{
		{"no shaders", nil},
		{"no fragment", []PipelineBuilderOption{WithVertexShader(vs)}},
		{"no vertex", []PipelineBuilderOption{WithFragmentShader(fs)}},
		{"swapped", []PipelineBuilderOption{WithShaders(fs, vs)}},
		{"no vertex input", []PipelineBuilderOption{WithShaders(noInput, fs)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, NewPipeline(tt.name, tt.opts...).Validate(), ErrIncomplete)
		})
	}
}
