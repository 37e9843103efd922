package shader

import (
	"strconv"
	"strings"
)

// primitiveLayouts holds the size and alignment of the WGSL scalar, vector and matrix types.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var primitiveLayouts = map[string]typeLayout{
	"f32": {4, 4}, "i32": {4, 4}, "u32": {4, 4},

	"vec2f": {8, 8}, "vec2<f32>": {8, 8}, "vec2i": {8, 8}, "vec2<i32>": {8, 8}, "vec2u": {8, 8}, "vec2<u32>": {8, 8},
	"vec3f": {12, 16}, "vec3<f32>": {12, 16}, "vec3i": {12, 16}, "vec3<i32>": {12, 16}, "vec3u": {12, 16}, "vec3<u32>": {12, 16},
	"vec4f": {16, 16}, "vec4<f32>": {16, 16}, "vec4i": {16, 16}, "vec4<i32>": {16, 16}, "vec4u": {16, 16}, "vec4<u32>": {16, 16},

	"mat3x3f": {48, 16}, "mat3x3<f32>": {48, 16},
	"mat4x4f": {64, 16}, "mat4x4<f32>": {64, 16},
}

func roundUp(align, v uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// resolveLayout returns the layout of a primitive, a known struct or a fixed-size array of either.
// A runtime-sized array resolves to one element stride.
func resolveLayout(typeName string, known map[string]typeLayout) (typeLayout, bool) {
	if l, ok := primitiveLayouts[typeName]; ok {
		return l, true
	}
	if l, ok := known[typeName]; ok {
		return l, true
	}
	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return typeLayout{}, false
	}
	elemName, count, sized := strings.Cut(strings.TrimSuffix(inner, ">"), ",")
	elem, ok := resolveLayout(strings.TrimSpace(elemName), known)
	if !ok {
		return typeLayout{}, false
	}
	stride := roundUp(elem.align, elem.size)
	if !sized {
		return typeLayout{stride, elem.align}, true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
	if err != nil {
		return typeLayout{}, false
	}
	return typeLayout{n * stride, elem.align}, true
}

func structLayout(s wgslStruct, known map[string]typeLayout) (typeLayout, bool) {
	var offset uint64
	align := uint64(1)
	for _, f := range s.fields {
		if f.builtin {
			continue
		}
		l, ok := resolveLayout(f.typeName, known)
		if !ok {
			return typeLayout{}, false
		}
		offset = roundUp(l.align, offset) + l.size
		align = max(align, l.align)
	}
	return typeLayout{roundUp(align, offset), align}, true
}

// structLayouts resolves every struct, repeating until structs that embed other structs settle.
func structLayouts(structs []wgslStruct) map[string]typeLayout {
	known := make(map[string]typeLayout, len(structs))
	pending := append([]wgslStruct(nil), structs...)
	for len(pending) > 0 {
		next := pending[:0]
		for _, s := range pending {
			if l, ok := structLayout(s, known); ok {
				known[s.name] = l
			} else {
				next = append(next, s)
			}
		}
		if len(next) == len(pending) {
			break
		}
		pending = next
	}
	return known
}
