package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pebbles/internal/pebbles"
)

// isolate points the home and working directories at empty temp dirs so
// Load only sees what the test writes.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default differs from Default():\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
game:
  difficulty: hard
  pebbles_count: 50
  max_pebbles_per_turn: 10
random:
  seed: 42
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := pebbles.Config{Difficulty: pebbles.Hard, PebblesCount: 50, MaxPebblesPerTurn: 10}
	if cfg.Game != want {
		t.Errorf("Game = %+v, want %+v", cfg.Game, want)
	}
	if cfg.Random.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Random.Seed)
	}
	// Sections missing from the file keep their defaults.
	if cfg.Log.Level != "info" || !cfg.Storage.Enabled {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join("configs", "pebbles.yaml"), "game:\n  pebbles_count: 30\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.PebblesCount != 30 {
		t.Errorf("local config not used: PebblesCount = %d", cfg.Game.PebblesCount)
	}

	writeFile(t, filepath.Join(home, ".pebbles", "config.yaml"), "game:\n  pebbles_count: 40\n")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.PebblesCount != 40 {
		t.Errorf("user config should win over local: PebblesCount = %d", cfg.Game.PebblesCount)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	isolate(t)

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadRejectsInvalidGame(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "game:\n  pebbles_count: 5\n  max_pebbles_per_turn: 10\n")

	_, err := Load(path)
	if !errors.Is(err, pebbles.ErrInvalidConfig) {
		t.Errorf("Load() = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadRejectsUnknownDifficulty(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "game:\n  difficulty: nightmare\n")

	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PEBBLES_GAME_DIFFICULTY", "hard")
	t.Setenv("PEBBLES_GAME_PEBBLES_COUNT", "21")
	t.Setenv("PEBBLES_RANDOM_SEED", "7")
	t.Setenv("PEBBLES_STORAGE_ENABLED", "false")
	t.Setenv("PEBBLES_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.Difficulty != pebbles.Hard || cfg.Game.PebblesCount != 21 {
		t.Errorf("game env overrides not applied: %+v", cfg.Game)
	}
	if cfg.Game.MaxPebblesPerTurn != 3 {
		t.Errorf("unset env var changed MaxPebblesPerTurn to %d", cfg.Game.MaxPebblesPerTurn)
	}
	if cfg.Random.Seed != 7 || cfg.Storage.Enabled {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bad log level")
	}

	cfg = Default()
	cfg.Storage.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for enabled storage without path")
	}
	cfg.Storage.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled storage should not need a path: %v", err)
	}
}

func TestMarshal(t *testing.T) {
	cfg := Default()
	cfg.Game.Difficulty = pebbles.Hard

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{"difficulty: hard", "pebbles_count: 15", "max_pebbles_per_turn: 3", "level: info"} {
		if !strings.Contains(out, want) {
			t.Errorf("Marshal() output missing %q:\n%s", want, out)
		}
	}
}
