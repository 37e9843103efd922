package animator

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"go.uber.org/zap"
)

// ErrQueueFull is returned by Enqueue when the pending queue is at capacity.
var ErrQueueFull = errors.New("animator: move queue full")

// Progress describes the turn currently being animated.
type Progress struct {
	Turn cube.Turn

	// Fraction is the eased completion in [0, 1].
	Fraction float32

	// Angle is the rotation applied to the turning layer, in radians around the positive turn axis.
	Angle float32
}

// animator is the implementation of the Animator interface.
type animator struct {
	mu *sync.Mutex

	queue           []cube.Turn
	active          *cube.Turn
	elapsed         time.Duration
	quarterDuration time.Duration
	speed           float32
	easing          EasingType
	maxQueue        int
	onComplete      func(cube.Turn)
	logger          *zap.Logger
}

// Animator schedules layer turns and blends each one over time before it is committed.
//
// Turns play one at a time in FIFO order. A quarter turn lasts the configured duration divided
// by the speed, a half turn twice that. Time left over after a turn finishes carries into the next
// one, so a long frame can complete several turns at once. A speed of zero or less makes every
// turn complete on the next Update.
type Animator interface {
	// Enqueue appends a turn to the queue.
	//
	// Parameters:
	//   - t: the turn to animate
	//
	// Returns:
	//   - error: ErrQueueFull if the queue is at capacity
	Enqueue(t cube.Turn) error

	// Update advances the active animation by dt scaled by the speed.
	// The completion callback runs for every finished turn after the internal lock is released.
	//
	// Parameters:
	//   - dt: the wall-clock time since the previous update
	//
	// Returns:
	//   - []cube.Turn: the turns that finished during this update, in order
	Update(dt time.Duration) []cube.Turn

	// Current returns the in-flight turn and its progress.
	//
	// Returns:
	//   - Progress: the active turn's progress
	//   - bool: false when nothing is animating
	Current() (Progress, bool)

	// Pending returns the queued turns that have not started.
	//
	// Returns:
	//   - []cube.Turn: a copy of the queue
	Pending() []cube.Turn

	// Clear drops the active and queued turns without completing them.
	//
	// Returns:
	//   - int: the number of turns dropped
	Clear() int

	// Flush completes the active and queued turns immediately.
	//
	// Returns:
	//   - []cube.Turn: the turns completed
	Flush() []cube.Turn

	// SetSpeed sets the playback speed multiplier.
	//
	// Parameters:
	//   - speed: turns per quarter duration; zero or less completes turns instantly
	SetSpeed(speed float32)

	// Speed returns the playback speed multiplier.
	//
	// Returns:
	//   - float32: the current speed
	Speed() float32

	// Idle reports whether no turn is active or queued.
	//
	// Returns:
	//   - bool: true when idle
	Idle() bool
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator with a 250ms quarter turn and smoothstep easing.
//
// Parameters:
//   - options: variadic list of AnimatorBuilderOption functions to configure the animator
//
// Returns:
//   - Animator: the created animator
func NewAnimator(options ...AnimatorBuilderOption) Animator {
	a := &animator{
		mu:              &sync.Mutex{},
		quarterDuration: 250 * time.Millisecond,
		speed:           1,
		easing:          EasingSmoothstep,
		maxQueue:        64,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *animator) Enqueue(t cube.Turn) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.maxQueue > 0 && len(a.queue) >= a.maxQueue {
		return ErrQueueFull
	}
	a.queue = append(a.queue, t)
	return nil
}

func (a *animator) duration(t cube.Turn) time.Duration {
	if t.Quarters == 2 || t.Quarters == -2 {
		return 2 * a.quarterDuration
	}
	return a.quarterDuration
}

func (a *animator) Update(dt time.Duration) []cube.Turn {
	a.mu.Lock()
	var completed []cube.Turn
	instant := a.speed <= 0 || a.quarterDuration <= 0
	remaining := time.Duration(float64(dt) * float64(a.speed))
	for {
		if a.active == nil {
			if len(a.queue) == 0 {
				break
			}
			next := a.queue[0]
			a.queue = a.queue[1:]
			a.active = &next
			a.elapsed = 0
		}
		if instant {
			completed = append(completed, *a.active)
			a.active = nil
			continue
		}
		need := a.duration(*a.active) - a.elapsed
		if remaining < need {
			a.elapsed += remaining
			break
		}
		remaining -= need
		completed = append(completed, *a.active)
		a.active = nil
	}
	cb := a.onComplete
	a.mu.Unlock()

	for _, t := range completed {
		a.logger.Debug("turn animated", zap.Stringer("turn", t))
		if cb != nil {
			cb(t)
		}
	}
	return completed
}

func (a *animator) Current() (Progress, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return Progress{}, false
	}
	linear := float32(1)
	if d := a.duration(*a.active); d > 0 {
		linear = float32(float64(a.elapsed) / float64(d))
	}
	frac := a.easing.Apply(linear)
	return Progress{
		Turn:     *a.active,
		Fraction: frac,
		Angle:    frac * float32(a.active.Quarters) * math.Pi / 2,
	}, true
}

func (a *animator) Pending() []cube.Turn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]cube.Turn(nil), a.queue...)
}

func (a *animator) Clear() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.queue)
	if a.active != nil {
		n++
	}
	a.queue = nil
	a.active = nil
	a.elapsed = 0
	return n
}

func (a *animator) Flush() []cube.Turn {
	a.mu.Lock()
	var turns []cube.Turn
	if a.active != nil {
		turns = append(turns, *a.active)
	}
	turns = append(turns, a.queue...)
	a.queue = nil
	a.active = nil
	a.elapsed = 0
	cb := a.onComplete
	a.mu.Unlock()

	if cb != nil {
		for _, t := range turns {
			cb(t)
		}
	}
	return turns
}

func (a *animator) SetSpeed(speed float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speed = speed
}

func (a *animator) Speed() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.speed
}

func (a *animator) Idle() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active == nil && len(a.queue) == 0
}
