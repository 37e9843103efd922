package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	// ErrShaderNotFound is returned when a shader source file does not exist.
	ErrShaderNotFound = errors.New("shader source not found")

	// ErrShaderCompile is returned when WGSL source cannot be turned into a shader module.
	ErrShaderCompile = errors.New("shader compile failed")
)

// CubeSource is the built-in WGSL program used to draw the cube. It holds both stages.
//
//go:embed cube.wgsl
var CubeSource string

// ShaderType identifies the pipeline stage a shader is compiled for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage of a render pipeline.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage of a render pipeline.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderType(%d)", int(t))
}

// Stage returns the wgpu stage flag used for bind group visibility.
func (t ShaderType) Stage() wgpu.ShaderStage {
	switch t {
	case ShaderTypeVertex:
		return wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		return wgpu.ShaderStageFragment
	}
	return wgpu.ShaderStageNone
}

// shader is the implementation of the Shader interface.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string

	bindGroupLayouts map[int]wgpu.BindGroupLayoutDescriptor
	bindingNames     map[int]map[int]string
	vertexLayouts    []wgpu.VertexBufferLayout
}

// Shader is a parsed WGSL stage. The metadata extracted from the source (entry point, vertex
// buffer layouts and bind group layouts) is everything the renderer needs to link a pipeline.
type Shader interface {
	// Key returns the unique identifier of the shader.
	//
	// Returns:
	//   - string: the shader key
	Key() string

	// Source returns the WGSL source code.
	//
	// Returns:
	//   - string: the WGSL source
	Source() string

	// ShaderType returns the stage the shader was parsed for.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// EntryPoint returns the name of the stage's entry function.
	//
	// Returns:
	//   - string: the entry point, e.g. "vs_main"
	EntryPoint() string

	// VertexLayouts returns the vertex buffer layouts, one per vertex input struct, in source order.
	// Fragment shaders return nil.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors returns the bind group layouts declared by the source keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindingName returns the variable declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, empty if nothing is declared there
	BindingName(group, binding int) string

	// Binding finds the group and binding of a declared variable.
	//
	// Parameters:
	//   - name: the variable name
	//
	// Returns:
	//   - int: the group index
	//   - int: the binding index
	//   - bool: false if no variable has that name
	Binding(name string) (int, int, bool)

	// Module returns the descriptor used to create the GPU shader module.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the module descriptor
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader reads and parses WGSL source from disk.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to parse the source for
//   - path: the WGSL file path
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrShaderNotFound if the file is missing, ErrShaderCompile if the source is unusable
func NewShader(key string, shaderType ShaderType, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrShaderNotFound, path)
		}
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return NewShaderFromSource(key, shaderType, string(data))
}

// NewShaderFromSource parses WGSL source held in memory.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to parse the source for
//   - source: the WGSL code
//
// Returns:
//   - Shader: the parsed shader
//   - error: ErrShaderCompile if the source has no entry point for the stage or declares unusable bindings
func NewShaderFromSource(key string, shaderType ShaderType, source string) (Shader, error) {
	if shaderType != ShaderTypeVertex && shaderType != ShaderTypeFragment {
		return nil, fmt.Errorf("%w: %s: unsupported stage %s", ErrShaderCompile, key, shaderType)
	}
	cleaned := stripComments(source)
	if !balanced(cleaned) {
		return nil, fmt.Errorf("%w: %s: unbalanced braces", ErrShaderCompile, key)
	}

	s := &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
	}
	s.entryPoint = parseEntryPoint(cleaned, shaderType)
	if s.entryPoint == "" {
		return nil, fmt.Errorf("%w: %s: no @%s entry point", ErrShaderCompile, key, shaderType)
	}

	structs := parseStructBlocks(cleaned)
	if shaderType == ShaderTypeVertex {
		layouts, err := parseVertexLayouts(structs)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrShaderCompile, key, err)
		}
		s.vertexLayouts = layouts
	}

	layouts, names, err := parseBindGroupLayouts(cleaned, structs, shaderType.Stage())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrShaderCompile, key, err)
	}
	s.bindGroupLayouts = layouts
	s.bindingNames = names
	return s, nil
}

func (s *shader) Key() string { return s.key }

func (s *shader) Source() string { return s.source }

func (s *shader) ShaderType() ShaderType { return s.shaderType }

func (s *shader) EntryPoint() string { return s.entryPoint }

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout { return s.vertexLayouts }

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayouts
}

func (s *shader) BindingName(group, binding int) string {
	return s.bindingNames[group][binding]
}

func (s *shader) Binding(name string) (int, int, bool) {
	for g, bindings := range s.bindingNames {
		for b, n := range bindings {
			if n == name {
				return g, b, true
			}
		}
	}
	return -1, -1, false
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
}
