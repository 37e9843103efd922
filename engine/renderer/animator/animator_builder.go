package animator

import (
	"time"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"go.uber.org/zap"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithSpeed is an option builder that sets the playback speed multiplier.
//
// Parameters:
//   - speed: the speed multiplier; zero or less completes turns instantly
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the speed option to an animator
func WithSpeed(speed float32) AnimatorBuilderOption {
	return func(a *animator) {
		a.speed = speed
	}
}

// WithQuarterDuration is an option builder that sets how long a quarter turn lasts at speed 1.
//
// Parameters:
//   - d: the quarter turn duration
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the duration option to an animator
func WithQuarterDuration(d time.Duration) AnimatorBuilderOption {
	return func(a *animator) {
		a.quarterDuration = d
	}
}

// WithEasing is an option builder that selects the easing curve.
//
// Parameters:
//   - e: the easing curve
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the easing option to an animator
func WithEasing(e EasingType) AnimatorBuilderOption {
	return func(a *animator) {
		a.easing = e
	}
}

// WithMaxQueue is an option builder that caps the number of pending turns. Zero removes the cap.
func WithMaxQueue(n int) AnimatorBuilderOption {
	return func(a *animator) {
		a.maxQueue = n
	}
}

// WithOnComplete is an option builder that registers the callback run for every finished turn.
// The game uses it to commit the turn to the cube state.
func WithOnComplete(fn func(cube.Turn)) AnimatorBuilderOption {
	return func(a *animator) {
		a.onComplete = fn
	}
}

// WithLogger is an option builder that sets the animator's logger.
func WithLogger(logger *zap.Logger) AnimatorBuilderOption {
	return func(a *animator) {
		if logger != nil {
			a.logger = logger
		}
	}
}
