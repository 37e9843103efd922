package cube

import "go.uber.org/zap"

type RubiksCubeBuilderOption func(*rubiksCubeImpl)

// WithLogger sets the logger used for move tracing.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - RubiksCubeBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) RubiksCubeBuilderOption {
	return func(c *rubiksCubeImpl) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithState starts the cube from s instead of the solved state. Invalid states are ignored.
//
// Parameters:
//   - s: the initial state
//
// Returns:
//   - RubiksCubeBuilderOption: a function that sets the initial state
func WithState(s State) RubiksCubeBuilderOption {
	return func(c *rubiksCubeImpl) {
		if Validate(s) == nil {
			c.state = s
		}
	}
}

// WithHistoryLimit caps the number of moves kept for undo. Zero keeps everything.
func WithHistoryLimit(n int) RubiksCubeBuilderOption {
	return func(c *rubiksCubeImpl) {
		c.historyLimit = max(n, 0)
	}
}

// WithGeometry sets the world placement used for picking.
func WithGeometry(g Geometry) RubiksCubeBuilderOption {
	return func(c *rubiksCubeImpl) {
		c.geometry = g
	}
}

// WithMoveCallback registers a function called after every applied move, under the cube lock.
func WithMoveCallback(fn func(Move)) RubiksCubeBuilderOption {
	return func(c *rubiksCubeImpl) {
		c.onMove = fn
	}
}
