package pebbles

import "errors"

// Errors returned by the Controller. Callers match them with errors.Is;
// the returned errors carry details through %w wrapping.
var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrInvalidTurnAmount = errors.New("invalid turn amount")
	ErrGameOver          = errors.New("game is over")
	ErrRandomUnavailable = errors.New("random source unavailable")
	ErrNotInitialized    = errors.New("game is not initialized")
	ErrUnknownAction     = errors.New("unknown action")
)

// IsRejection reports whether err means the game refused an action or
// config. The live game is unchanged and the caller may simply try again.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidTurnAmount) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrGameOver) ||
		errors.Is(err, ErrUnknownAction)
}
