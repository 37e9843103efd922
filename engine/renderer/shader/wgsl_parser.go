package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormats maps WGSL vertex attribute types to wgpu vertex formats.
var vertexFormats = map[string]vertexFormat{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2f":     {wgpu.VertexFormatFloat32x2, 8},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3f":     {wgpu.VertexFormatFloat32x3, 12},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4f":     {wgpu.VertexFormatFloat32x4, 16},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec2u":     {wgpu.VertexFormatUint32x2, 8},
	"vec2<u32>": {wgpu.VertexFormatUint32x2, 8},
	"vec4u":     {wgpu.VertexFormatUint32x4, 16},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
	"i32":       {wgpu.VertexFormatSint32, 4},
	"vec2i":     {wgpu.VertexFormatSint32x2, 8},
	"vec2<i32>": {wgpu.VertexFormatSint32x2, 8},
	"vec4i":     {wgpu.VertexFormatSint32x4, 16},
	"vec4<i32>": {wgpu.VertexFormatSint32x4, 16},
}

var (
	structRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex  = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex captures the member name and type after any attributes.
	fieldRegex = regexp.MustCompile(`^(?:@\w+(?:\([^)]*\))?\s*)*(\w+)\s*:\s*(.+)$`)

	entryRegexes = map[ShaderType]*regexp.Regexp{
		ShaderTypeVertex:   regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`),
		ShaderTypeFragment: regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`),
	}

	// bindingRegex matches declarations such as
	// @group(0) @binding(0) var<uniform> camera: CameraUniform;
	bindingRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

func parseEntryPoint(source string, shaderType ShaderType) string {
	re, ok := entryRegexes[shaderType]
	if !ok {
		return ""
	}
	if m := re.FindStringSubmatch(source); m != nil {
		return m[1]
	}
	return ""
}

func parseStructBlocks(source string) []wgslStruct {
	matches := structRegex.FindAllStringSubmatch(source, -1)
	out := make([]wgslStruct, 0, len(matches))
	for _, m := range matches {
		out = append(out, wgslStruct{name: m[1], fields: parseStructFields(m[2])})
	}
	return out
}

func parseStructFields(body string) []structField {
	var fields []structField
	for _, part := range splitTopLevel(body) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := fieldRegex.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		f := structField{
			name:     m[1],
			typeName: strings.TrimSpace(m[2]),
			location: -1,
			builtin:  builtinRegex.MatchString(part),
		}
		if loc := locationRegex.FindStringSubmatch(part); loc != nil {
			f.location, _ = strconv.Atoi(loc[1])
		}
		fields = append(fields, f)
	}
	return fields
}

// parseVertexLayouts builds one tightly packed vertex buffer layout per vertex input struct.
func parseVertexLayouts(structs []wgslStruct) ([]wgpu.VertexBufferLayout, error) {
	var layouts []wgpu.VertexBufferLayout
	for _, s := range structs {
		if !s.isVertexInput() {
			continue
		}
		attrs := make([]wgpu.VertexAttribute, 0, len(s.fields))
		var offset uint64
		for _, f := range s.fields {
			vf, ok := vertexFormats[f.typeName]
			if !ok {
				return nil, fmt.Errorf("struct %s: field %s has no vertex format for %q", s.name, f.name, f.typeName)
			}
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         vf.format,
				Offset:         offset,
				ShaderLocation: uint32(f.location),
			})
			offset += vf.size
		}
		layouts = append(layouts, wgpu.VertexBufferLayout{
			ArrayStride: offset,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes:  attrs,
		})
	}
	return layouts, nil
}

// parseBindGroupLayouts collects the buffer bindings declared in source. Uniform and storage
// buffers get MinBindingSize from the bound type when it can be resolved. Handle types such as
// textures and samplers are rejected.
func parseBindGroupLayouts(source string, structs []wgslStruct, visibility wgpu.ShaderStage) (map[int]wgpu.BindGroupLayoutDescriptor, map[int]map[int]string, error) {
	sizes := structLayouts(structs)
	groups := make(map[int][]wgpu.BindGroupLayoutEntry)
	names := make(map[int]map[int]string)

	for _, m := range bindingRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(m[1])
		binding, _ := strconv.Atoi(m[2])
		space := strings.TrimSpace(m[3])
		name := m[4]
		typeName := strings.TrimSpace(m[5])

		entry := wgpu.BindGroupLayoutEntry{Binding: uint32(binding), Visibility: visibility}
		switch {
		case space == "uniform":
			entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		case strings.HasPrefix(space, "storage") && strings.Contains(space, "read_write"):
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		case strings.HasPrefix(space, "storage"):
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		default:
			return nil, nil, fmt.Errorf("binding %s (group %d, binding %d): unsupported resource type %q", name, group, binding, typeName)
		}
		if l, ok := resolveLayout(typeName, sizes); ok {
			entry.Buffer.MinBindingSize = l.size
		}

		groups[group] = append(groups[group], entry)
		if names[group] == nil {
			names[group] = make(map[int]string)
		}
		names[group][binding] = name
	}

	out := make(map[int]wgpu.BindGroupLayoutDescriptor, len(groups))
	for g, entries := range groups {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Binding < entries[j].Binding })
		out[g] = wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("group %d", g),
			Entries: entries,
		}
	}
	return out, names, nil
}

// splitTopLevel splits a struct body on commas that are not inside angle brackets.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// stripComments removes line comments and (nested) block comments.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch {
			case source[i] == '/' && source[i+1] == '*':
				depth++
				i++
				continue
			case source[i] == '*' && source[i+1] == '/' && depth > 0:
				depth--
				i++
				continue
			case depth == 0 && source[i] == '/' && source[i+1] == '/':
				for i < len(source) && source[i] != '\n' {
					i++
				}
				if i < len(source) {
					sb.WriteByte('\n')
				}
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}
	return sb.String()
}

func balanced(source string) bool {
	depth := 0
	for _, r := range source {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
