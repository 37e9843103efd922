package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Carmen-Shannon/oxy-rubiks/config"
	"github.com/Carmen-Shannon/oxy-rubiks/debug"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/renderer"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
	"github.com/Carmen-Shannon/oxy-rubiks/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	vertexShaderFile   = "cube.vert.wgsl"
	fragmentShaderFile = "cube.frag.wgsl"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		overlay bool
		load    string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open the cube in a window",
		Long: `Opens the cube in a window. Drag a sticker to turn its layer, drag the
background to orbit and scroll to zoom. With --overlay a live status panel
runs in the terminal next to the window.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.play(cmd.Context(), overlay, load)
		},
	}
	cmd.Flags().BoolVar(&overlay, "overlay", false, "show the status overlay in the terminal, best paired with --log-file")
	cmd.Flags().StringVar(&load, "load", "", "start from this save")
	return cmd
}

// shaderPaths returns the override shader files in dir, or empty paths for the built-in shader.
func shaderPaths(dir string) (string, string) {
	if dir == "" {
		return "", ""
	}
	path := func(name string) string {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			return ""
		}
		return p
	}
	return path(vertexShaderFile), path(fragmentShaderFile)
}

func presentMode(vsync bool) renderer.PresentMode {
	if vsync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}

func (a *app) play(ctx context.Context, overlay bool, load string) (err error) {
	// GLFW and the surface must stay on the main thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	store := config.NewStore(a.settings)
	gs := a.settings.Graphics

	ws := window.NewWindowSystem(window.WithLogger(a.logger.Named("window")))
	defer func() { err = errors.Join(err, ws.Close()) }()

	w, err := ws.NewWindow(
		window.WithTitle(appName),
		window.WithPurpose("main"),
		window.WithSize(gs.Resolution.Width, gs.Resolution.Height),
		window.WithDebugOverlay(overlay),
	)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
		renderer.WithPresentMode(presentMode(gs.VSync)),
		renderer.WithMSAA(renderer.ParseMSAA(gs.MSAA)),
		renderer.WithLogger(a.logger.Named("renderer")),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	gfx := renderer.NewGraphics(r, w.Width(), w.Height(), renderer.WithGraphicsLogger(a.logger.Named("graphics")))
	if err := gfx.InitShaders(shaderPaths(gs.ShaderDir)); err != nil {
		return err
	}

	db, repo, err := a.openSaves()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := game.NewGame(
		game.WithSettings(store),
		game.WithRepository(repo),
		game.WithView(game.NewView(gfx, nil, nil)),
		game.WithWindowSystem(ws),
		game.WithMainWindow(w),
		game.WithOverlay(w.Config().DebugOverlay),
		game.WithLogger(a.logger.Named("game")),
	)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, g.Close()) }()

	if load != "" {
		if err := g.Load(ctx, load); err != nil {
			return err
		}
	}

	watcher, err := config.NewWatcher(a.configPath, store,
		config.WithWatcherLogger(a.logger.Named("settings")),
		config.WithOnReload(func(s *config.Settings, graphicsChanged bool) {
			a.logger.Info("settings reloaded", zap.Bool("graphics_changed", graphicsChanged))
		}),
	)
	if err != nil {
		return err
	}

	sideCtx, cancel := context.WithCancel(ctx)
	eg, egCtx := errgroup.WithContext(sideCtx)
	eg.Go(func() error {
		return watcher.Run(egCtx)
	})
	if overlay {
		eg.Go(func() error {
			err := debug.Run(egCtx, g, debug.WithTitle(appName))
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			// closing the overlay ends the game too
			g.Stop()
			return err
		})
	}

	// the game loop pumps window events, so it runs here on the locked thread
	runErr := g.Start(ctx)
	a.logger.Info("session ended", zap.String("summary", debug.Summary(appName, g.Stats())))
	cancel()
	watcher.Stop()
	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		runErr = errors.Join(runErr, fmt.Errorf("side task: %w", err))
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
