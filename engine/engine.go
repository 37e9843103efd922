package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-rubiks/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
	"go.uber.org/zap"
)

// ErrAlreadyRunning is returned by Run when the engine loop is already active or has finished.
var ErrAlreadyRunning = errors.New("engine: already running")

// EventPoller pumps platform events. window.WindowSystem satisfies it.
type EventPoller interface {
	PollEvents()
}

// engine implements the Engine interface.
// Coordinates the tick, render and event goroutines.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration

	started bool
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window       window.Window
	events       EventPoller
	pollInterval time.Duration

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate   time.Duration
	tickCallback     func(dt time.Duration)
	renderCallback   func(dt time.Duration) error
	renderFrameLimit time.Duration

	logger *zap.Logger
}

// Engine drives a fixed-rate tick loop and a free-running render loop, and pumps window events
// on the goroutine that calls Run.
type Engine interface {
	// Window returns the window the engine watches for close requests, or nil when headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Profiler returns the frame profiler. It only measures while profiling is enabled.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables per-frame profiling.
	EnableProfiler()

	// DisableProfiler disables per-frame profiling.
	DisableProfiler()

	// SetTickRate sets the tick rate in ticks per second. Takes effect immediately while running.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the current tick interval.
	//
	// Returns:
	//   - time.Duration: time between ticks
	TickRate() time.Duration

	// SetTickCallback registers the function called each tick with the time since the previous tick.
	// Must be called before Run.
	//
	// Parameters:
	//   - callback: the tick function
	SetTickCallback(callback func(dt time.Duration))

	// SetRenderCallback registers the function called each render frame. Errors are logged and the
	// loop continues. Without a render callback no render goroutine is started.
	// Must be called before Run.
	//
	// Parameters:
	//   - callback: the render function
	SetRenderCallback(callback func(dt time.Duration) error)

	// SetRenderFrameLimit caps the render loop. Pass 0 to uncap it.
	// Must be called before Run.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the tick and render loops and pumps events until Quit is called, the window is
	// closed or ctx is done. It blocks until every loop has exited. An engine runs once.
	//
	// Parameters:
	//   - ctx: the context bounding the run
	//
	// Returns:
	//   - error: ctx.Err() when the context ended the run, ErrAlreadyRunning on a second call
	Run(ctx context.Context) error

	// Running reports whether Run is active.
	//
	// Returns:
	//   - bool: true between Run starting and Quit
	Running() bool

	// Quit signals every loop to stop. Safe to call multiple times and from any goroutine.
	Quit()

	// Done is closed once Quit has been signalled.
	//
	// Returns:
	//   - <-chan struct{}: the quit channel
	Done() <-chan struct{}
}

// NewEngine creates an Engine ticking at 60Hz with an uncapped render loop.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
		pollInterval:    time.Second / 240,
		logger:          zap.NewNop(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger.Named("profiler")))
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

func (e *engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.started = true
	e.running = true
	e.mu.Unlock()

	stop := context.AfterFunc(ctx, e.signalQuit)
	defer stop()

	e.logger.Info("engine started", zap.Duration("tick", e.TickRate()))
	e.wg.Add(1)
	go e.handleEngine()
	if e.renderCallback != nil {
		e.wg.Add(1)
		go e.handleRender()
	}

	e.handleEvents()
	e.wg.Wait()
	e.logger.Info("engine stopped")
	return ctx.Err()
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handleEvents pumps platform events on the calling goroutine until quit. GLFW requires this to
// be the main thread.
func (e *engine) handleEvents() {
	if e.events == nil && e.window == nil {
		<-e.quitChannel
		return
	}

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			select {
			case <-e.quitChannel:
				return
			default:
			}
			if e.events != nil {
				e.events.PollEvents()
			}
			if e.window != nil && !e.window.IsRunning() {
				e.logger.Info("window closed", zap.String("purpose", e.window.Purpose()))
				e.signalQuit()
				return
			}
		}
	}
}

// handleEngine runs the fixed-rate tick loop and applies tick rate changes from tickRateChannel.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer e.recoverPanic("tick")

	ticker := time.NewTicker(e.TickRate())
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTick)
			lastTick = now
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

// handleRender runs the render loop, optionally frame limited.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer e.recoverPanic("render")

	lastRender := time.Now()
	var lastErr string
	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := now.Sub(lastRender)
		lastRender = now

		if err := e.renderCallback(dt); err != nil {
			// repeated identical failures are logged once
			if msg := err.Error(); msg != lastErr {
				e.logger.Warn("render failed", zap.Error(err))
				lastErr = msg
			}
		} else {
			lastErr = ""
		}

		if e.profilingEnabled.Load() {
			e.profiler.Tick()
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				select {
				case <-e.quitChannel:
					return
				case <-time.After(remaining):
				}
			}
		}
	}
}

// recoverPanic logs a panic in one of the loops and shuts the engine down.
func (e *engine) recoverPanic(loop string) {
	if r := recover(); r != nil {
		e.logger.Error("engine loop recovered from panic",
			zap.String("loop", loop),
			zap.String("panic", fmt.Sprint(r)),
			zap.StackSkip("stack", 1),
		)
		e.signalQuit()
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) TickRate() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engineTickRate
}

func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)

	e.mu.Lock()
	e.engineTickRate = newRate
	running := e.running
	e.mu.Unlock()
	if !running {
		return
	}

	// replace any pending update that the loop has not picked up yet
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		select {
		case e.tickRateChannel <- newRate:
		default:
		}
	}
}

func (e *engine) SetTickCallback(callback func(dt time.Duration)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(dt time.Duration) error) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = tickInterval(fps)
}
