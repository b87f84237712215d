package config

import (
	_ "embed"

	"github.com/vovakirdan/pebbles/internal/pebbles"
)

//go:embed defaults/pebbles.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: pebbles.Config{
			Difficulty:        pebbles.Easy,
			PebblesCount:      15,
			MaxPebblesPerTurn: 3,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.pebbles/history.db",
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.pebbles/pebbles.log",
		},
	}
}
