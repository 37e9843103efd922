package pipeline

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrIncomplete is returned by Validate when a pipeline cannot be linked from its shaders.
var ErrIncomplete = errors.New("pipeline incomplete")

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	key string

	vertexShader, fragmentShader shader.Shader

	// renderPipeline is nil until the renderer links the pipeline
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled    bool
	depthWriteEnabled   bool
	depthBias           int32
	depthBiasSlopeScale float32
	blendEnabled        bool
	cullMode            wgpu.CullMode
	topology            wgpu.PrimitiveTopology
	frontFace           wgpu.FrontFace
	writeMask           wgpu.ColorWriteMask
	blendState          *wgpu.BlendState
}

// Pipeline is a render pipeline description: a vertex and fragment shader pair plus the depth,
// blend, cull and topology state the renderer links them with.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader set for a stage.
	//
	// Parameters:
	//   - shaderType: the stage to look up
	//
	// Returns:
	//   - shader.Shader: the shader for the stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// Validate checks that both stages are present and that the vertex stage declares a vertex buffer layout.
	//
	// Returns:
	//   - error: ErrIncomplete wrapped with the missing piece, nil if the pipeline can be linked
	Validate() error

	// RenderPipeline returns the linked GPU pipeline.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the linked pipeline, nil before linking
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline stores the linked GPU pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the linked GPU pipeline if there is one.
	Release()

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// DepthBias returns the constant depth bias.
	//
	// Returns:
	//   - int32: the depth bias value
	DepthBias() int32

	// DepthBiasSlopeScale returns the slope scaled depth bias.
	//
	// Returns:
	//   - float32: the depth bias slope scale
	DepthBiasSlopeScale() float32

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the winding order
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline description. The defaults are an opaque, depth tested
// triangle list with counter-clockwise front faces and no culling.
//
// Parameters:
//   - key: the unique key for this pipeline
//   - opts: options configuring shaders and fixed function state
//
// Returns:
//   - Pipeline: the configured pipeline
func NewPipeline(key string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		key:               key,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.key
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) Validate() error {
	switch {
	case p.vertexShader == nil:
		return fmt.Errorf("%w: %s: no vertex shader", ErrIncomplete, p.key)
	case p.fragmentShader == nil:
		return fmt.Errorf("%w: %s: no fragment shader", ErrIncomplete, p.key)
	case p.vertexShader.ShaderType() != shader.ShaderTypeVertex:
		return fmt.Errorf("%w: %s: %s is not a vertex shader", ErrIncomplete, p.key, p.vertexShader.Key())
	case p.fragmentShader.ShaderType() != shader.ShaderTypeFragment:
		return fmt.Errorf("%w: %s: %s is not a fragment shader", ErrIncomplete, p.key, p.fragmentShader.Key())
	case len(p.vertexShader.VertexLayouts()) == 0:
		return fmt.Errorf("%w: %s: vertex shader declares no vertex input", ErrIncomplete, p.key)
	}
	return nil
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthBias() int32 {
	return p.depthBias
}

func (p *pipeline) DepthBiasSlopeScale() float32 {
	return p.depthBiasSlopeScale
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}
