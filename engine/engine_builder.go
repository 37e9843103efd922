package engine

import (
	"github.com/Carmen-Shannon/oxy-rubiks/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables per-frame profiling.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithTickRate sets the tick rate in ticks per second. Values <= 0 mean 60.
//
// Parameters:
//   - fps: target ticks per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithWindow sets the window whose close request ends Run.
//
// Parameters:
//   - w: the game window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithEvents sets the event source pumped by Run, usually the window system.
//
// Parameters:
//   - p: the event poller
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithEvents(p EventPoller) EngineBuilderOption {
	return func(e *engine) {
		e.events = p
	}
}

// WithRenderFrameLimit caps the render loop in frames per second. 0 uncaps it.
//
// Parameters:
//   - fps: maximum render frames per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = 0
		if fps > 0 {
			e.renderFrameLimit = tickInterval(fps)
		}
	}
}

// WithLogger sets the engine logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
