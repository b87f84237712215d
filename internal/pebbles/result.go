package pebbles

import "time"

// Result summarizes a finished game.
type Result struct {
	GameID            string
	Difficulty        DifficultyLevel
	PebblesCount      uint32
	MaxPebblesPerTurn uint32
	FirstPlayer       Player
	Winner            Player
	UserTurns         int
	ProgramTurns      int
	GiveUps           int
	StartedAt         time.Time
	FinishedAt        time.Time
}

// Duration returns how long the game lasted.
func (r Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Recorder receives a Result once per finished game.
type Recorder interface {
	RecordResult(Result) error
}
