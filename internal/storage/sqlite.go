// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/pebbles/internal/pebbles"
)

// Store manages the SQLite database connection for the results history.
type Store struct {
	db *sql.DB
}

// ResultEntry is a stored game result.
type ResultEntry struct {
	ID int64
	pebbles.Result
}

// Totals aggregates results for one difficulty.
type Totals struct {
	Difficulty  pebbles.DifficultyLevel
	Games       int
	UserWins    int
	ProgramWins int
}

// WinRate returns the share of games won by the user, in [0, 1].
func (t Totals) WinRate() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.UserWins) / float64(t.Games)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			difficulty TEXT NOT NULL,
			pebbles_count INTEGER NOT NULL,
			max_pebbles_per_turn INTEGER NOT NULL,
			first_player TEXT NOT NULL,
			winner TEXT NOT NULL,
			user_turns INTEGER NOT NULL DEFAULT 0,
			program_turns INTEGER NOT NULL DEFAULT 0,
			give_ups INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_finished ON results(finished_at DESC);
		CREATE INDEX IF NOT EXISTS idx_results_difficulty ON results(difficulty);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordResult implements pebbles.Recorder.
func (s *Store) RecordResult(r pebbles.Result) error {
	_, err := s.SaveResult(r)
	return err
}

// SaveResult records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r pebbles.Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results
		 (game_id, difficulty, pebbles_count, max_pebbles_per_turn, first_player, winner,
		  user_turns, program_turns, give_ups, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID,
		r.Difficulty.String(),
		r.PebblesCount,
		r.MaxPebblesPerTurn,
		r.FirstPlayer.String(),
		r.Winner.String(),
		r.UserTurns,
		r.ProgramTurns,
		r.GiveUps,
		r.StartedAt.UnixMilli(),
		r.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults retrieves the most recently finished games, newest first.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, difficulty, pebbles_count, max_pebbles_per_turn, first_player, winner,
		        user_turns, program_turns, give_ups, started_at, finished_at
		 FROM results
		 ORDER BY finished_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var (
			e                             ResultEntry
			difficulty, first, winner     string
			startedMillis, finishedMillis int64
		)
		if err := rows.Scan(
			&e.ID, &e.GameID, &difficulty, &e.PebblesCount, &e.MaxPebblesPerTurn, &first, &winner,
			&e.UserTurns, &e.ProgramTurns, &e.GiveUps, &startedMillis, &finishedMillis,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if e.Difficulty, err = pebbles.ParseDifficulty(difficulty); err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", e.ID, err)
		}
		if e.FirstPlayer, err = pebbles.ParsePlayer(first); err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", e.ID, err)
		}
		if e.Winner, err = pebbles.ParsePlayer(winner); err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", e.ID, err)
		}
		e.StartedAt = time.UnixMilli(startedMillis)
		e.FinishedAt = time.UnixMilli(finishedMillis)

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// TotalsByDifficulty returns win counts grouped by difficulty, easy first.
// Difficulties with no games are omitted.
func (s *Store) TotalsByDifficulty() ([]Totals, error) {
	rows, err := s.db.Query(
		`SELECT difficulty,
		        COUNT(*),
		        SUM(CASE WHEN winner = 'user' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN winner = 'program' THEN 1 ELSE 0 END)
		 FROM results
		 GROUP BY difficulty
		 ORDER BY CASE difficulty WHEN 'easy' THEN 0 ELSE 1 END`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query totals: %w", err)
	}
	defer rows.Close()

	var totals []Totals
	for rows.Next() {
		var (
			t          Totals
			difficulty string
		)
		if err := rows.Scan(&difficulty, &t.Games, &t.UserWins, &t.ProgramWins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if t.Difficulty, err = pebbles.ParseDifficulty(difficulty); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return totals, nil
}

// ClearResults deletes the whole history.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}
