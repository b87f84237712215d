package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pebbles/internal/pebbles"
	"github.com/vovakirdan/pebbles/internal/platform/console"
	"github.com/vovakirdan/pebbles/internal/platform/tui"
	"github.com/vovakirdan/pebbles/internal/rng"
	"github.com/vovakirdan/pebbles/internal/storage"
)

var (
	flagDifficulty string
	flagPebbles    uint32
	flagMax        uint32
	flagNoHistory  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game against the computer.

A coin flip decides who moves first. If the computer wins the flip it
makes its opening move before you see the board.

Controls (terminal):
  0-9, Enter  - Take that many pebbles
  G           - Give up your turn
  R           - Restart with the same settings
  Tab         - Switch difficulty and restart
  ?           - Toggle help
  Q/Esc       - Quit

When stdin is not a terminal the game reads one command per line instead:
  turn N | giveup | restart [easy|hard] [PEBBLES MAX] | state | quit

Difficulty options:
  easy   - The computer removes a random amount
  hard   - The computer plays the optimal move

Examples:
  pebbles play
  pebbles play --difficulty hard
  pebbles play --pebbles 50 --max 10
  pebbles play --config ./my-pebbles.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, hard")
	playCmd.Flags().Uint32Var(&flagPebbles, "pebbles", 0, "Number of pebbles in the pile")
	playCmd.Flags().Uint32Var(&flagMax, "max", 0, "Maximum pebbles per turn")
	playCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record the result")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))

	// The TUI owns the terminal, so logs go to a file while it runs.
	var logOut io.Writer = os.Stderr
	if interactive {
		f, logErr := openLogFile(cfg.Log.File)
		if logErr != nil {
			logOut = io.Discard
		} else {
			defer f.Close()
			logOut = f
		}
	}
	logger := newLogger(logOut, cfg)

	opts := []pebbles.Option{pebbles.WithLogger(logger)}

	// Open results storage
	var store *storage.Store
	if cfg.Storage.Enabled {
		store, err = storage.Open(cfg.Storage.Path)
		if err != nil {
			// Continue without storage - game still works
			logger.Warn("could not open results database", "error", err)
			store = nil
		} else {
			opts = append(opts, pebbles.WithRecorder(store))
		}
	}

	ctrl := pebbles.NewController(rng.New(cfg.Random.Seed), opts...)
	if err := ctrl.Initialize(cfg.Game); err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error starting game: %v\n", err)
		os.Exit(1)
	}

	if interactive {
		err = tui.Run(ctrl, logger)
	} else {
		err = console.NewSession(ctrl, os.Stdin, os.Stdout, logger).Run()
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
