package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pebbles/internal/platform/tui"
	"github.com/vovakirdan/pebbles/internal/storage"
)

var (
	flagLimit int
	flagClear bool
	flagPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show finished games and win totals",
	Long: `Display the most recently finished games and how often you beat the
computer on each difficulty.

Examples:
  pebbles history
  pebbles history --plain --limit 25
  pebbles history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print as text even on a terminal")
}

func runHistory(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}

	err = showHistory(store)

	// Close store before potential exit
	store.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showHistory clears, browses or prints the history depending on flags.
func showHistory(store *storage.Store) error {
	if flagClear {
		if err := store.ClearResults(); err != nil {
			return fmt.Errorf("clearing results: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	}

	if term.IsTerminal(int(os.Stdout.Fd())) && !flagPlain {
		if err := tui.RunHistory(store); err != nil {
			return fmt.Errorf("running history: %w", err)
		}
		return nil
	}

	return printHistory(os.Stdout, store, flagLimit)
}

// printHistory writes recent games and totals as plain text.
func printHistory(w io.Writer, src tui.HistorySource, limit int) error {
	entries, err := src.RecentResults(limit)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'pebbles play' to record the first one!")
		return nil
	}

	fmt.Fprintln(w, "Recent games")
	fmt.Fprintln(w)

	// Print header
	fmt.Fprintf(w, "  %-16s  %-6s  %-8s  %-8s  %-8s  %-5s  %s\n", "Date", "Level", "Pile", "First", "Winner", "Turns", "Time")
	fmt.Fprintf(w, "  %-16s  %-6s  %-8s  %-8s  %-8s  %-5s  %s\n", "----", "-----", "----", "-----", "------", "-----", "----")

	// Print results
	for _, e := range entries {
		pile := fmt.Sprintf("%d/%d", e.PebblesCount, e.MaxPebblesPerTurn)
		fmt.Fprintf(w, "  %-16s  %-6s  %-8s  %-8s  %-8s  %-5d  %s\n",
			e.FinishedAt.Format("2006-01-02 15:04"),
			e.Difficulty,
			pile,
			e.FirstPlayer,
			e.Winner,
			e.UserTurns+e.ProgramTurns,
			e.Duration().Round(time.Second),
		)
	}

	totals, err := src.TotalsByDifficulty()
	if err != nil {
		return fmt.Errorf("retrieving totals: %w", err)
	}

	fmt.Fprintln(w)
	for _, t := range totals {
		fmt.Fprintf(w, "%-5s  %d games, you won %d (%.0f%%)\n",
			t.Difficulty, t.Games, t.UserWins, t.WinRate()*100)
	}
	return nil
}
