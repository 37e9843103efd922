package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rubiks/config"
	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/engine"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/input"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer/animator"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
	"github.com/Carmen-Shannon/oxy-rubiks/storage"
	"go.uber.org/zap"
)

// Save names used by the game itself.
const (
	AutosaveName  = "before_exit_autosave"
	QuicksaveName = "quicksave"
)

// Sentinel errors for the game package.
var (
	ErrNoRepository = errors.New("game: no save repository configured")
	ErrClosed       = errors.New("game: closed")
)

// Repository stores and retrieves save games. *storage.SaveRepository implements it.
type Repository interface {
	Save(ctx context.Context, name string, snap storage.Snapshot) (storage.SaveInfo, error)
	Load(ctx context.Context, name string) (storage.Snapshot, error)
}

// Stats is a point-in-time summary of the game for overlays.
type Stats struct {
	State       cube.State
	Solved      bool
	Moves       int
	Queued      int
	Animating   bool
	LastAction  input.Action
	CurrentTime time.Duration
	DeltaTime   time.Duration
	FPS         float64
	Overlay     bool
}

// game is the implementation of the Game interface.
type game struct {
	mu *sync.Mutex

	cube       cube.RubiksCube
	animator   animator.Animator
	dispatcher input.Dispatcher
	settings   *config.Store
	repo       Repository
	view       View
	windows    window.WindowSystem
	mainWindow window.Window
	rng        *rand.Rand

	engine  engine.Engine
	stopped bool
	closed  bool

	currentTime time.Duration
	deltaTime   time.Duration
	lastAction  input.Action
	overlay     bool
	speed       float32
	drag        dragState
	solved      bool

	pool    worker.DynamicWorkerPool
	workers int
	saves   sync.WaitGroup
	taskID  int

	logger *zap.Logger
}

// Game runs one Rubik's cube session: it turns key actions into animated layer turns, commits
// finished turns to the cube, applies settings changes and persists saves.
type Game interface {
	// Update advances the game clock by dt, handles every queued action, advances the turn
	// animation and applies pending graphical settings.
	//
	// Parameters:
	//   - dt: time since the previous update
	Update(dt time.Duration)

	// Start runs the game loop until Stop, a quit action, the main window closing or ctx ending.
	//
	// Parameters:
	//   - ctx: the context bounding the loop
	//
	// Returns:
	//   - error: ctx.Err() when the context ended the loop, ErrClosed after Close
	Start(ctx context.Context) error

	// Stop ends the game loop. Calling Stop before Start makes Start return immediately.
	Stop()

	// Running reports whether the game loop is active.
	//
	// Returns:
	//   - bool: true while Start is looping
	Running() bool

	// CurrentTime returns the total play time accumulated by Update.
	//
	// Returns:
	//   - time.Duration: the game clock
	CurrentTime() time.Duration

	// DeltaTime returns the dt of the last Update.
	//
	// Returns:
	//   - time.Duration: the last step
	DeltaTime() time.Duration

	// Save stores the committed cube under name and waits for the write.
	//
	// Parameters:
	//   - ctx: the context bounding the write
	//   - name: the save name
	//
	// Returns:
	//   - error: ErrNoRepository or a storage error
	Save(ctx context.Context, name string) error

	// SaveAsync queues a save on the worker pool and returns immediately. Failures are logged.
	//
	// Parameters:
	//   - name: the save name
	SaveAsync(name string)

	// Load replaces the cube, history and clock with a save. Animations in flight are dropped.
	//
	// Parameters:
	//   - ctx: the context bounding the read
	//   - name: the save name
	//
	// Returns:
	//   - error: ErrNoRepository, storage.ErrSaveNotFound or a storage error
	Load(ctx context.Context, name string) error

	// Close stops the loop, writes the before_exit_autosave save and waits for every pending
	// save. Safe to call more than once.
	//
	// Returns:
	//   - error: the autosave error, if any
	Close() error

	// AcknowledgeMainWindowResize records a new main window size. The renderer picks it up on the
	// next Update.
	//
	// Parameters:
	//   - width: the framebuffer width
	//   - height: the framebuffer height
	AcknowledgeMainWindowResize(width, height int)

	// Cube returns the committed cube.
	//
	// Returns:
	//   - cube.RubiksCube: the cube
	Cube() cube.RubiksCube

	// Animator returns the turn scheduler.
	//
	// Returns:
	//   - animator.Animator: the animator
	Animator() animator.Animator

	// Dispatcher returns the key to action dispatcher.
	//
	// Returns:
	//   - input.Dispatcher: the dispatcher
	Dispatcher() input.Dispatcher

	// Settings returns the shared settings store.
	//
	// Returns:
	//   - *config.Store: the store
	Settings() *config.Store

	// Render draws one frame through the view. It is a no-op without a view.
	//
	// Parameters:
	//   - dt: time since the previous frame
	//
	// Returns:
	//   - error: the view's draw error
	Render(dt time.Duration) error

	// Stats summarizes the game for overlays.
	//
	// Returns:
	//   - Stats: the current stats
	Stats() Stats
}

var _ Game = &game{}

// NewGame creates a game with a solved cube and the keymap from the settings.
//
// Parameters:
//   - options: functional options to configure the game
//
// Returns:
//   - Game: the created game
//   - error: ErrInvalidSettings when the configured keymap does not load
func NewGame(options ...GameBuilderOption) (Game, error) {
	g := &game{
		mu:      &sync.Mutex{},
		workers: 2,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(g)
	}

	if g.settings == nil {
		g.settings = config.NewStore(config.DefaultSettings())
	}
	s := g.settings.Snapshot()
	if g.cube == nil {
		g.cube = cube.NewRubiksCube(cube.WithLogger(g.logger.Named("cube")))
	}
	if g.dispatcher == nil {
		km, err := s.BuildKeymap()
		if err != nil {
			return nil, err
		}
		g.dispatcher = input.NewDispatcher(input.WithKeymap(km), input.WithLogger(g.logger.Named("input")))
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}

	g.speed = s.AnimationSpeed
	g.animator = animator.NewAnimator(
		animator.WithSpeed(s.AnimationSpeed),
		animator.WithEasing(animator.ParseEasing(s.Easing)),
		animator.WithOnComplete(g.commit),
		animator.WithLogger(g.logger.Named("animator")),
	)
	g.pool = worker.NewDynamicWorkerPool(g.workers, 256, 1*time.Second)

	if g.windows != nil {
		g.dispatcher.Attach(g.windows)
		g.windows.OnResize(func(w window.Window, width, height int) {
			if g.mainWindow == nil || w.Handle() == g.mainWindow.Handle() {
				g.AcknowledgeMainWindowResize(width, height)
			}
		})
	}
	if g.mainWindow != nil && g.view != nil {
		g.attachMouse(g.mainWindow)
	}
	return g, nil
}

// commit applies a finished animation to the cube.
func (g *game) commit(t cube.Turn) {
	if err := g.cube.ApplyTurn(t); err != nil {
		g.logger.Error("dropping invalid turn", zap.Stringer("turn", t), zap.Error(err))
	}
}

func (g *game) Update(dt time.Duration) {
	for _, a := range g.dispatcher.Queue().Drain() {
		g.handleAction(a)
	}

	g.mu.Lock()
	g.deltaTime = dt
	g.currentTime += dt
	g.mu.Unlock()

	g.applySettings()

	// the lock keeps Render from seeing a committed turn together with its finished animation
	g.mu.Lock()
	g.animator.Update(dt)
	g.mu.Unlock()

	solved := g.cube.IsSolved() && len(g.cube.History()) > 0
	g.mu.Lock()
	justSolved := solved && !g.solved
	g.solved = solved
	g.mu.Unlock()
	if justSolved {
		g.logger.Info("cube solved", zap.Duration("time", g.CurrentTime()), zap.Int("moves", len(g.cube.History())))
	}
}

func (g *game) handleAction(a input.Action) {
	g.mu.Lock()
	g.lastAction = a
	g.mu.Unlock()

	if t, ok := a.Turn(); ok {
		if err := g.animator.Enqueue(t); err != nil {
			g.logger.Warn("turn dropped", zap.Stringer("action", a), zap.Error(err))
		}
		return
	}

	switch a {
	case input.QuitGame:
		g.Stop()
	case input.Undo:
		g.animator.Flush()
		if _, err := g.cube.Undo(); err != nil {
			g.logger.Debug("undo ignored", zap.Error(err))
		}
	case input.Scramble:
		g.animator.Flush()
		g.cube.Scramble(g.rng, g.settings.Snapshot().ScrambleLength)
		g.mu.Lock()
		g.currentTime = 0
		g.mu.Unlock()
	case input.Reset:
		g.animator.Clear()
		g.cube.Reset()
		g.mu.Lock()
		g.currentTime = 0
		g.mu.Unlock()
	case input.Save:
		g.SaveAsync(QuicksaveName)
	case input.ToggleOverlay:
		g.mu.Lock()
		g.overlay = !g.overlay
		g.mu.Unlock()
	}
}

// applySettings pushes changed settings to the animator and the view.
func (g *game) applySettings() {
	var (
		graphics config.GraphicalSettings
		changed  bool
		speed    float32
	)
	g.settings.Update(func(s *config.Settings) {
		speed = s.AnimationSpeed
		if s.Graphics.HasChanged() {
			graphics, changed = s.Graphics, true
			s.Graphics.AcknowledgeChange()
		}
	})

	g.mu.Lock()
	speedChanged := speed != g.speed
	g.speed = speed
	g.mu.Unlock()
	if speedChanged {
		g.animator.SetSpeed(speed)
		g.logger.Info("animation speed changed", zap.Float32("speed", speed))
	}

	if !changed || g.view == nil {
		return
	}
	if err := g.view.Apply(graphics); err != nil {
		g.logger.Warn("applying graphical settings failed", zap.Error(err))
	}
}

func (g *game) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return ErrClosed
	}
	if g.stopped || g.engine != nil {
		g.mu.Unlock()
		return nil
	}
	opts := []engine.EngineBuilderOption{
		engine.WithTickRate(g.settings.Snapshot().TickRate),
		engine.WithLogger(g.logger.Named("engine")),
	}
	if g.windows != nil {
		opts = append(opts, engine.WithEvents(g.windows))
	}
	if g.mainWindow != nil {
		opts = append(opts, engine.WithWindow(g.mainWindow))
	}
	eng := engine.NewEngine(opts...)
	eng.SetTickCallback(g.Update)
	if g.view != nil {
		eng.SetRenderCallback(g.Render)
		eng.EnableProfiler()
	}
	g.engine = eng
	g.mu.Unlock()

	g.logger.Info("game started")
	err := eng.Run(ctx)
	g.logger.Info("game stopped", zap.Duration("play_time", g.CurrentTime()))
	return err
}

func (g *game) Stop() {
	g.mu.Lock()
	g.stopped = true
	eng := g.engine
	g.mu.Unlock()
	if eng != nil {
		eng.Quit()
	}
}

func (g *game) Running() bool {
	g.mu.Lock()
	eng := g.engine
	g.mu.Unlock()
	return eng != nil && eng.Running()
}

func (g *game) CurrentTime() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentTime
}

func (g *game) DeltaTime() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.deltaTime
}

func (g *game) AcknowledgeMainWindowResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.settings.Update(func(s *config.Settings) {
		s.Graphics.SetResolution(width, height)
	})
}

func (g *game) Cube() cube.RubiksCube { return g.cube }

func (g *game) Animator() animator.Animator { return g.animator }

func (g *game) Dispatcher() input.Dispatcher { return g.dispatcher }

func (g *game) Settings() *config.Store { return g.settings }

func (g *game) Render(dt time.Duration) error {
	if g.view == nil {
		return nil
	}
	g.mu.Lock()
	state := g.cube.State()
	p, animating := g.animator.Current()
	g.mu.Unlock()

	var progress *animator.Progress
	if animating {
		progress = &p
	}
	return g.view.Draw(state, progress)
}

func (g *game) Stats() Stats {
	state := g.cube.State()
	_, animating := g.animator.Current()

	g.mu.Lock()
	eng := g.engine
	st := Stats{
		State:       state,
		Solved:      state.IsSolved(),
		Moves:       len(g.cube.History()),
		Queued:      len(g.animator.Pending()),
		Animating:   animating,
		LastAction:  g.lastAction,
		CurrentTime: g.currentTime,
		DeltaTime:   g.deltaTime,
		Overlay:     g.overlay,
	}
	g.mu.Unlock()

	if eng != nil {
		st.FPS = eng.Profiler().FPS()
	}
	return st
}

func (g *game) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	g.mu.Unlock()

	g.Stop()
	g.animator.Flush()

	var err error
	if g.repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err = g.Save(ctx, AutosaveName)
	}
	g.saves.Wait()
	if g.view != nil {
		g.view.Release()
	}
	if err != nil {
		return fmt.Errorf("autosave: %w", err)
	}
	return nil
}
