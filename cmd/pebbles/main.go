// pebbles is a terminal version of the pebbles subtraction game: you and the
// computer take turns removing pebbles from a pile, and whoever takes the
// last pebble wins.
//
// Usage:
//
//	pebbles play             - Play a game (TUI, or line mode when piped)
//	pebbles history          - Show finished games and win totals
//	pebbles config           - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.pebbles, ./configs)
//	--seed <value>     - RNG seed for reproducible games (0 = crypto/rand)
//	--db <path>        - Results database path
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pebbles",
	Short: "Pebbles - take the last pebble to win",
	Long: `Pebbles is a two-player subtraction game played against the computer.

Players alternately remove between 1 and a fixed maximum of pebbles from a
single pile. Whoever removes the last pebble wins.

Available commands:
  play     - Play a game
  history  - Show finished games and win totals
  config   - Print the effective configuration

Examples:
  pebbles play
  pebbles play --difficulty hard --pebbles 50 --max 10
  printf 'turn 3\ngiveup\nstate\n' | pebbles play --seed 42
  pebbles history --limit 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = crypto/rand)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
