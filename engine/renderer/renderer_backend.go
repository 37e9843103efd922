package renderer

import (
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// MSAASampleCount is the number of samples used for multisample anti-aliasing.
// WebGPU guarantees 1 and 4; 8 and 16 are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8x multisample anti-aliasing.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16x multisample anti-aliasing.
	MSAA16x MSAASampleCount = 16
)

// ParseMSAA converts a sample count from configuration, falling back to MSAA4x for values the
// GPU cannot use.
func ParseMSAA(samples int) MSAASampleCount {
	switch samples {
	case 0, 1:
		return MSAAOff
	case 8:
		return MSAA8x
	case 16:
		return MSAA16x
	default:
		return MSAA4x
	}
}

// RendererBackend is the GPU API a Renderer drives. Every method that touches the device
// reports failures as errors.
type RendererBackend interface {
	ConfigureSurface(width, height int) error
	SetPresentMode(mode PresentMode)
	RegisterRenderPipeline(p pipeline.Pipeline) error
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	BeginFrame() error
	DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame() error
	Present()
	Release()
}
