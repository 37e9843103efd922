package game

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-rubiks/config"
	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/input"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
	"go.uber.org/zap"
)

// GameBuilderOption is a functional option applied to a game in NewGame.
type GameBuilderOption func(*game)

// WithCube sets the cube the game plays on.
//
// Parameters:
//   - c: the cube
//
// Returns:
//   - GameBuilderOption: a function that sets the cube
func WithCube(c cube.RubiksCube) GameBuilderOption {
	return func(g *game) {
		g.cube = c
	}
}

// WithSettings sets the shared settings store. A nil store selects the defaults.
//
// Parameters:
//   - s: the settings store
//
// Returns:
//   - GameBuilderOption: a function that sets the settings
func WithSettings(s *config.Store) GameBuilderOption {
	return func(g *game) {
		g.settings = s
	}
}

// WithDispatcher replaces the dispatcher built from the settings keymap.
//
// Parameters:
//   - d: the dispatcher
//
// Returns:
//   - GameBuilderOption: a function that sets the dispatcher
func WithDispatcher(d input.Dispatcher) GameBuilderOption {
	return func(g *game) {
		g.dispatcher = d
	}
}

// WithRepository enables saving and loading.
//
// Parameters:
//   - r: the save repository
//
// Returns:
//   - GameBuilderOption: a function that sets the repository
func WithRepository(r Repository) GameBuilderOption {
	return func(g *game) {
		g.repo = r
	}
}

// WithView sets the view the game renders into and picks through.
//
// Parameters:
//   - v: the view
//
// Returns:
//   - GameBuilderOption: a function that sets the view
func WithView(v View) GameBuilderOption {
	return func(g *game) {
		g.view = v
	}
}

// WithWindowSystem routes key and resize events of ws into the game and lets the engine pump it.
//
// Parameters:
//   - ws: the window system
//
// Returns:
//   - GameBuilderOption: a function that sets the window system
func WithWindowSystem(ws window.WindowSystem) GameBuilderOption {
	return func(g *game) {
		g.windows = ws
	}
}

// WithMainWindow sets the window whose closing ends the game.
//
// Parameters:
//   - w: the main window
//
// Returns:
//   - GameBuilderOption: a function that sets the main window
func WithMainWindow(w window.Window) GameBuilderOption {
	return func(g *game) {
		g.mainWindow = w
	}
}

// WithRand sets the source used for scrambles.
//
// Parameters:
//   - r: the random source
//
// Returns:
//   - GameBuilderOption: a function that sets the source
func WithRand(r *rand.Rand) GameBuilderOption {
	return func(g *game) {
		g.rng = r
	}
}

// WithWorkers sets the size of the save worker pool.
//
// Parameters:
//   - n: number of workers, values below 1 are ignored
//
// Returns:
//   - GameBuilderOption: a function that sets the worker count
func WithWorkers(n int) GameBuilderOption {
	return func(g *game) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithLogger sets the logger used by the game and the parts it creates.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - GameBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) GameBuilderOption {
	return func(g *game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithOverlay sets whether the debug overlay starts visible.
//
// Parameters:
//   - visible: the initial overlay state
//
// Returns:
//   - GameBuilderOption: a function that sets the overlay state
func WithOverlay(visible bool) GameBuilderOption {
	return func(g *game) {
		g.overlay = visible
	}
}
