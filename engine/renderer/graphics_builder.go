package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// GraphicsBuilderOption is a functional option applied to Graphics in NewGraphics.
type GraphicsBuilderOption func(*graphics)

// WithGraphicsLogger sets the logger used by Graphics.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - GraphicsBuilderOption: a function that sets the logger
func WithGraphicsLogger(logger *zap.Logger) GraphicsBuilderOption {
	return func(g *graphics) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithLightDirection sets the direction the scene light travels in. Zero vectors are ignored.
//
// Parameters:
//   - dir: the light direction in world space
//
// Returns:
//   - GraphicsBuilderOption: a function that sets the light direction
func WithLightDirection(dir mgl32.Vec3) GraphicsBuilderOption {
	return func(g *graphics) {
		if dir.Len() > 0 {
			g.lightDir = dir.Normalize()
		}
	}
}
