// Package pebbles implements the pebbles subtraction game: a user and an
// automated opponent take turns removing pebbles from one pile and whoever
// takes the last pebble wins.
//
// The package contains pure game logic with no terminal, storage or
// transport dependencies. Hosts drive a Controller with Actions and render
// the Events it returns.
package pebbles

import (
	"fmt"
	"strings"
)

// DifficultyLevel selects the opponent strategy.
type DifficultyLevel int

const (
	Easy DifficultyLevel = iota // random removals
	Hard                        // optimal removals
)

// String returns the lowercase name used in configs and on the command line.
func (d DifficultyLevel) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts a name (case-insensitive) to a DifficultyLevel.
func ParseDifficulty(s string) (DifficultyLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d DifficultyLevel) MarshalText() ([]byte, error) {
	if d != Easy && d != Hard {
		return nil, fmt.Errorf("%w: unknown difficulty %d", ErrInvalidConfig, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. YAML and env decoding
// both go through it.
func (d *DifficultyLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Player identifies a side of the game.
type Player int

const (
	User    Player = iota // the human
	Program               // the automated opponent
)

// String returns the lowercase name of the player.
func (p Player) String() string {
	switch p {
	case User:
		return "user"
	case Program:
		return "program"
	default:
		return "unknown"
	}
}

// ParsePlayer converts a name produced by Player.String back to a Player.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return User, nil
	case "program":
		return Program, nil
	}
	return User, fmt.Errorf("unknown player %q", s)
}

// Config holds the parameters of a single game.
type Config struct {
	Difficulty        DifficultyLevel `yaml:"difficulty" env:"DIFFICULTY"`
	PebblesCount      uint32          `yaml:"pebbles_count" env:"PEBBLES_COUNT"`
	MaxPebblesPerTurn uint32          `yaml:"max_pebbles_per_turn" env:"MAX_PEBBLES_PER_TURN"`
}

// Validate checks the configuration is playable.
func (c Config) Validate() error {
	if c.Difficulty != Easy && c.Difficulty != Hard {
		return fmt.Errorf("%w: unknown difficulty %d", ErrInvalidConfig, int(c.Difficulty))
	}
	if c.MaxPebblesPerTurn == 0 {
		return fmt.Errorf("%w: max_pebbles_per_turn must be at least 1", ErrInvalidConfig)
	}
	if c.PebblesCount <= c.MaxPebblesPerTurn {
		return fmt.Errorf("%w: pebbles_count must be greater than max_pebbles_per_turn (%d <= %d)",
			ErrInvalidConfig, c.PebblesCount, c.MaxPebblesPerTurn)
	}
	return nil
}

// GameState is the full state of the live game.
type GameState struct {
	PebblesCount      uint32
	MaxPebblesPerTurn uint32
	PebblesRemaining  uint32
	Difficulty        DifficultyLevel
	FirstPlayer       Player
	Winner            *Player // nil while the game is running
}

// newGameState builds a fresh state from a validated config.
func newGameState(cfg Config) GameState {
	return GameState{
		PebblesCount:      cfg.PebblesCount,
		MaxPebblesPerTurn: cfg.MaxPebblesPerTurn,
		PebblesRemaining:  cfg.PebblesCount,
		Difficulty:        cfg.Difficulty,
	}
}

// Config returns the configuration the state was created from.
func (s GameState) Config() Config {
	return Config{
		Difficulty:        s.Difficulty,
		PebblesCount:      s.PebblesCount,
		MaxPebblesPerTurn: s.MaxPebblesPerTurn,
	}
}

// IsOver reports whether a winner has been decided.
func (s GameState) IsOver() bool {
	return s.Winner != nil
}

// clone returns a copy that shares no memory with s.
func (s GameState) clone() GameState {
	if s.Winner != nil {
		w := *s.Winner
		s.Winner = &w
	}
	return s
}

// String renders a one-line summary.
func (s GameState) String() string {
	winner := "none"
	if s.Winner != nil {
		winner = s.Winner.String()
	}
	return fmt.Sprintf("remaining=%d/%d max=%d difficulty=%s first=%s winner=%s",
		s.PebblesRemaining, s.PebblesCount, s.MaxPebblesPerTurn, s.Difficulty, s.FirstPlayer, winner)
}
