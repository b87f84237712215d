// Package config provides YAML-based configuration loading for pebbles,
// with environment overrides.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pebbles/internal/pebbles"
)

// EnvPrefix is prepended to every environment override, e.g.
// PEBBLES_GAME_DIFFICULTY=hard.
const EnvPrefix = "PEBBLES_"

// Config is the full application configuration.
type Config struct {
	Game    pebbles.Config `yaml:"game" envPrefix:"GAME_"`
	Random  RandomConfig   `yaml:"random" envPrefix:"RANDOM_"`
	Storage StorageConfig  `yaml:"storage" envPrefix:"STORAGE_"`
	Log     LogConfig      `yaml:"log" envPrefix:"LOG_"`
}

// RandomConfig selects the random source.
type RandomConfig struct {
	Seed int64 `yaml:"seed" env:"SEED"` // 0 = crypto/rand
}

// StorageConfig controls the results history database.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Path    string `yaml:"path" env:"PATH"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"` // used by the TUI, which owns the terminal
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("config: game: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("config: storage path is required when storage is enabled")
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
