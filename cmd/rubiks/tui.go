package main

import (
	"context"
	"errors"

	"github.com/Carmen-Shannon/oxy-rubiks/config"
	"github.com/Carmen-Shannon/oxy-rubiks/debug"
	"github.com/Carmen-Shannon/oxy-rubiks/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newTUICmd(a *app) *cobra.Command {
	var load string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Play the cube in the terminal",
		Long: `Plays the cube without a window. The net is redrawn as layers turn and the
keys are the same as in the window. Logging is off unless --log-file is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.tui(cmd.Context(), load)
		},
	}
	cmd.Flags().StringVar(&load, "load", "", "start from this save")
	return cmd
}

func (a *app) tui(ctx context.Context, load string) (err error) {
	db, repo, err := a.openSaves()
	if err != nil {
		return err
	}
	defer db.Close()

	g, err := game.NewGame(
		game.WithSettings(config.NewStore(a.settings)),
		game.WithRepository(repo),
		game.WithOverlay(a.verbose),
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

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return g.Start(egCtx)
	})
	eg.Go(func() error {
		defer g.Stop()
		err := debug.Run(egCtx, g, debug.WithTitle(appName))
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
