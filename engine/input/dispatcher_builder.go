package input

import "go.uber.org/zap"

// DispatcherBuilderOption is a functional option for configuring a Dispatcher.
type DispatcherBuilderOption func(*dispatcher)

// WithKeymap sets the keymap used to resolve events.
//
// Parameters:
//   - km: the keymap
//
// Returns:
//   - DispatcherBuilderOption: a function that sets the keymap
func WithKeymap(km Keymap) DispatcherBuilderOption {
	return func(d *dispatcher) {
		d.keymap = km
	}
}

// WithQueue sets the queue resolved actions are pushed to.
//
// Parameters:
//   - q: the queue
//
// Returns:
//   - DispatcherBuilderOption: a function that sets the queue
func WithQueue(q ActionQueue) DispatcherBuilderOption {
	return func(d *dispatcher) {
		d.queue = q
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(logger *zap.Logger) DispatcherBuilderOption {
	return func(d *dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}
