package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-rubiks/config"
	"github.com/Carmen-Shannon/oxy-rubiks/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	appName = "oxy-rubiks"
	version = "0.1.0"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool
	logFile    string

	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "rubiks",
		Short: "A Rubik's cube you can turn, scramble and save",
		Long: `rubiks plays a 3x3 Rubik's cube in a WebGPU window or in the terminal.

Layers turn with the keyboard or by dragging stickers, saves are kept in a
local SQLite database and settings are read from a YAML file that is
reloaded while the game runs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultPath(), "settings file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(
		newPlayCmd(a),
		newTUICmd(a),
		newApplyCmd(a),
		newScrambleCmd(a),
		newSavesCmd(a),
	)
	return root
}

// init loads the settings and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	s, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.settings = s

	// the terminal UI owns stderr, so it only logs when given a file
	if cmd.Name() == "tui" && a.logFile == "" {
		return nil
	}

	cfg := zap.NewProductionConfig()
	level, err := s.Level()
	if err != nil {
		return err
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	if a.logFile != "" {
		cfg.OutputPaths = []string{a.logFile}
		cfg.ErrorOutputPaths = []string{a.logFile}
	}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger.Named("rubiks")
	return nil
}

// openSaves opens the save database in the configured directory.
func (a *app) openSaves() (*storage.DB, *storage.SaveRepository, error) {
	db, err := storage.OpenDir(a.settings.SaveDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open saves: %w", err)
	}
	return db, storage.NewSaveRepository(db, storage.WithLogger(a.logger.Named("storage"))), nil
}
