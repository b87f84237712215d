package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pebbles/internal/config"
	"github.com/vovakirdan/pebbles/internal/pebbles"
	"github.com/vovakirdan/pebbles/internal/storage"
)

// loadConfig loads the config file and layers command line flags on top.
// Only flags the user actually set override the file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Random.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
		cfg.Storage.Enabled = true
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("difficulty") {
		d, err := pebbles.ParseDifficulty(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		cfg.Game.Difficulty = d
	}
	if flags.Changed("pebbles") {
		cfg.Game.PebblesCount = flagPebbles
	}
	if flags.Changed("max") {
		cfg.Game.MaxPebblesPerTurn = flagMax
	}
	if flags.Changed("no-history") && flagNoHistory {
		cfg.Storage.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the application logger writing to w.
func newLogger(w io.Writer, cfg config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pebbles",
		Level:           cfg.LogLevel(),
	})
}

// openLogFile opens the log file used while the TUI owns the terminal.
func openLogFile(path string) (*os.File, error) {
	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
