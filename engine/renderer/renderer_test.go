package renderer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/mesh"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeBackend records what the renderer asks of the GPU.
type fakeBackend struct {
	calls      []string
	configured [2]int
	present    PresentMode
	linked     []string
	linkErr    error
	bindGroups []wgpu.BindGroupLayoutDescriptor
	meshBytes  map[string][2]int
	writes     []bind_group_provider.BufferWrite
	inFrame    bool
	drawn      []string
	released   bool
}

var _ RendererBackend = &fakeBackend{}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{meshBytes: make(map[string][2]int)}
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.calls = append(f.calls, "configure")
	f.configured = [2]int{width, height}
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.present = mode }

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	f.linked = append(f.linked, p.PipelineKey())
	return nil
}

func (f *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.meshBytes[provider.Label()] = [2]int{len(vertexData), len(indexData)}
	provider.SetIndexCount(indexCount)
	return nil
}

func (f *fakeBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	f.bindGroups = append(f.bindGroups, descriptor)
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, writes...)
}

func (f *fakeBackend) BeginFrame() error {
	if f.inFrame {
		return ErrFrameInProgress
	}
	f.inFrame = true
	f.calls = append(f.calls, "begin")
	return nil
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, m bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	if !f.inFrame {
		return ErrNoFrame
	}
	f.calls = append(f.calls, "draw")
	f.drawn = append(f.drawn, p.PipelineKey()+":"+m.Label())
	return nil
}

func (f *fakeBackend) EndFrame() error {
	if !f.inFrame {
		return ErrNoFrame
	}
	f.calls = append(f.calls, "end")
	return nil
}

func (f *fakeBackend) Present() {
	f.calls = append(f.calls, "present")
	f.inFrame = false
}

func (f *fakeBackend) Release() { f.released = true }

func newTestRenderer(t *testing.T, opts ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	b := newFakeBackend()
	r := newRenderer(BackendTypeWGPU, append([]RendererBuilderOption{withBackend(b)}, opts...)...)
	require.NoError(t, r.attach(800, 600))
	return r, b
}

func cubePipeline(t *testing.T, key string) pipeline.Pipeline {
	t.Helper()
	vs, err := shader.NewShaderFromSource("vs", shader.ShaderTypeVertex, shader.CubeSource)
	require.NoError(t, err)
	fs, err := shader.NewShaderFromSource("fs", shader.ShaderTypeFragment, shader.CubeSource)
	require.NoError(t, err)
	return pipeline.NewPipeline(key, pipeline.WithShaders(vs, fs))
}

func TestRendererAttach(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r, b := newTestRenderer(t, WithPresentMode(PresentModeUncapped), WithLogger(zap.New(core)), WithMSAA(MSAAOff))
	assert.Equal(t, [2]int{800, 600}, b.configured)
	assert.Equal(t, PresentModeUncapped, b.present)
	assert.Equal(t, MSAAOff, r.msaa)
	assert.Equal(t, 1, logs.FilterMessage("renderer ready").Len())

	require.NoError(t, r.Resize(1024, 768))
	assert.Equal(t, [2]int{1024, 768}, b.configured)
}

func TestParseMSAA(t *testing.T) {
	assert.Equal(t, MSAAOff, ParseMSAA(0))
	assert.Equal(t, MSAAOff, ParseMSAA(1))
	assert.Equal(t, MSAA4x, ParseMSAA(4))
	assert.Equal(t, MSAA4x, ParseMSAA(3))
	assert.Equal(t, MSAA8x, ParseMSAA(8))
	assert.Equal(t, MSAA16x, ParseMSAA(16))
}

func TestRegisterPipelines(t *testing.T) {
	r, b := newTestRenderer(t)
	p := cubePipeline(t, "cube")

	require.NoError(t, r.RegisterPipelines(p, p))
	assert.Equal(t, []string{"cube"}, b.linked, "duplicate keys are linked once")
	assert.Same(t, p, r.Pipeline("cube"))
	assert.Len(t, r.Pipelines(), 1)

	err := r.RegisterPipelines(pipeline.NewPipeline("empty"))
	assert.ErrorIs(t, err, ErrPipelineLink)
	assert.ErrorIs(t, err, pipeline.ErrIncomplete)
	assert.Nil(t, r.Pipeline("empty"))

	b.linkErr = errors.New("bad wgsl")
	err = r.RegisterPipelines(cubePipeline(t, "other"))
	assert.ErrorIs(t, err, ErrPipelineLink)
	assert.ErrorIs(t, err, b.linkErr)
}

func TestDrawCallLifecycle(t *testing.T) {
	r, b := newTestRenderer(t)
	require.NoError(t, r.RegisterPipelines(cubePipeline(t, "cube")))
	m := bind_group_provider.NewBindGroupProvider("mesh")

	assert.ErrorIs(t, r.DrawCall("missing", m, nil), ErrPipelineNotFound)
	assert.ErrorIs(t, r.DrawCall("cube", m, nil), ErrNoFrame)

	require.NoError(t, r.BeginFrame())
	assert.ErrorIs(t, r.BeginFrame(), ErrFrameInProgress)
	require.NoError(t, r.DrawCall("cube", m, nil))
	require.NoError(t, r.EndFrame())
	r.Present()

	assert.Equal(t, []string{"configure", "begin", "draw", "end", "present"}, b.calls)
	assert.Equal(t, []string{"cube:mesh"}, b.drawn)
}

func TestInitMeshBuffersRejectsEmpty(t *testing.T) {
	r, _ := newTestRenderer(t)
	p := bind_group_provider.NewBindGroupProvider("empty")
	assert.Error(t, r.InitMeshBuffers(p, nil, nil, 0))
}

func TestRendererRelease(t *testing.T) {
	r, b := newTestRenderer(t)
	require.NoError(t, r.RegisterPipelines(cubePipeline(t, "cube")))
	r.Release()
	assert.True(t, b.released)
	assert.Empty(t, r.Pipelines())
}

func TestMergeBindGroupLayouts(t *testing.T) {
	v := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "group 0", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageVertex},
		}},
	}
	f := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "group 0", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
		2: {Label: "group 2", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
	}
	merged := mergeBindGroupLayouts(v, f)
	require.Len(t, merged, 2)
	require.Len(t, merged[0].Entries, 2)
	assert.Equal(t, uint32(0), merged[0].Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, merged[0].Entries[1].Visibility)
	assert.Equal(t, wgpu.ShaderStageVertex, v[0].Entries[0].Visibility, "inputs are not modified")
	assert.Len(t, merged[2].Entries, 1)
}

func TestGraphicsViewport(t *testing.T) {
	r, _ := newTestRenderer(t)
	g := NewGraphics(r, 800, 600)

	w, h := g.Viewport()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.InDelta(t, 800.0/600.0, g.Aspect(), 1e-6)

	require.NoError(t, g.Resize(1920, 1080))
	w, h = g.Viewport()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	require.NoError(t, g.Resize(0, 0))
	assert.Equal(t, float32(1), g.Aspect())
	assert.Same(t, r, g.Renderer())
}

func TestGraphicsInitShaders(t *testing.T) {
	r, b := newTestRenderer(t)
	g := NewGraphics(r, 800, 600)

	require.NoError(t, g.InitShaders("", ""))
	require.NoError(t, g.InitShaders("", ""), "a second call is a no-op")
	assert.Equal(t, []string{CubePipelineKey}, b.linked)
	require.Len(t, b.bindGroups, 1)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, b.bindGroups[0].Entries[0].Visibility)
}

func TestGraphicsInitShadersFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(shader.CubeSource), 0o600))

	r, _ := newTestRenderer(t)
	require.NoError(t, NewGraphics(r, 1, 1).InitShaders(path, path))

	r2, _ := newTestRenderer(t)
	err := NewGraphics(r2, 1, 1).InitShaders(filepath.Join(dir, "missing.wgsl"), "")
	assert.ErrorIs(t, err, shader.ErrShaderNotFound)

	bad := filepath.Join(dir, "bad.wgsl")
	require.NoError(t, os.WriteFile(bad, []byte("@fragment fn fs() -> @location(0) vec4f { return vec4f(); }"), 0o600))
	r3, _ := newTestRenderer(t)
	err = NewGraphics(r3, 1, 1).InitShaders(bad, "")
	assert.ErrorIs(t, err, shader.ErrShaderCompile)
}

func TestGraphicsDraw(t *testing.T) {
	r, b := newTestRenderer(t)
	g := NewGraphics(r, 800, 600, WithLightDirection(mgl32.Vec3{0, -2, 0}))

	assert.ErrorIs(t, g.Draw(Frame{}), ErrPipelineNotFound)
	require.NoError(t, g.InitShaders("", ""))
	assert.ErrorIs(t, g.Draw(Frame{}), ErrNoMesh)

	square := mesh.Square(1, [3]float32{1, 1, 1})
	require.NoError(t, g.Draw(Frame{ViewProjection: mgl32.Ident4(), Mesh: square}))
	assert.Equal(t, [2]int{4 * mesh.VertexSize, 6 * 4}, b.meshBytes["cube mesh"])

	require.Len(t, b.writes, 1)
	assert.Equal(t, "camera", b.writes[0].Provider.Label())
	assert.Len(t, b.writes[0].Data, 80)

	// a frame without a mesh redraws the last upload
	require.NoError(t, g.Draw(Frame{ViewProjection: mgl32.Ident4()}))
	assert.Equal(t, []string{"cube:cube mesh", "cube:cube mesh"}, b.drawn)
	assert.Equal(t, "present", b.calls[len(b.calls)-1])

	g.Release()
}
