package mesh

import "github.com/Carmen-Shannon/oxy-rubiks/cube"

// CubeMeshBuilderOption is a functional option used to configure a CubeMeshBuilder.
type CubeMeshBuilderOption func(*cubeMeshBuilder)

// WithGeometry sets the cube placement.
//
// Parameters:
//   - g: the geometry shared with picking
//
// Returns:
//   - CubeMeshBuilderOption: a function that sets the geometry
func WithGeometry(g cube.Geometry) CubeMeshBuilderOption {
	return func(b *cubeMeshBuilder) {
		b.geometry = g
	}
}

// WithBodyColor sets the color of the cubie bodies.
//
// Parameters:
//   - rgb: the body color
//
// Returns:
//   - CubeMeshBuilderOption: a function that sets the body color
func WithBodyColor(rgb [3]float32) CubeMeshBuilderOption {
	return func(b *cubeMeshBuilder) {
		b.bodyColor = rgb
	}
}

// WithStickerScale sets the sticker side as a fraction of the cubie side. Values outside (0, 1]
// are ignored.
//
// Parameters:
//   - scale: the sticker fraction
//
// Returns:
//   - CubeMeshBuilderOption: a function that sets the sticker scale
func WithStickerScale(scale float32) CubeMeshBuilderOption {
	return func(b *cubeMeshBuilder) {
		if scale > 0 && scale <= 1 {
			b.stickerScale = scale
		}
	}
}
