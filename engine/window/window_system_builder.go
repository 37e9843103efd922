package window

import "go.uber.org/zap"

// WindowSystemBuilderOption is a functional option for configuring a WindowSystem.
type WindowSystemBuilderOption func(s *windowSystem)

// WithBackend replaces the GLFW backend, e.g. with a headless one in tests.
//
// Parameters:
//   - b: the platform backend
//
// Returns:
//   - WindowSystemBuilderOption: option function to apply
func WithBackend(b Backend) WindowSystemBuilderOption {
	return func(s *windowSystem) {
		if b != nil {
			s.backend = b
		}
	}
}

// WithLogger sets the logger used for window lifecycle and dispatch warnings.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - WindowSystemBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) WindowSystemBuilderOption {
	return func(s *windowSystem) {
		if logger != nil {
			s.logger = logger
		}
	}
}
