package pebbles

import "fmt"

// Action is a request sent to the Controller.
type Action interface {
	action()
}

// Turn removes Amount pebbles on behalf of the user.
type Turn struct {
	Amount uint32
}

func (Turn) action() {}

// Validate checks the amount against the per-turn limit.
func (t Turn) Validate(maxPerTurn uint32) error {
	if t.Amount == 0 || t.Amount > maxPerTurn {
		return fmt.Errorf("%w: %d is outside [1, %d]", ErrInvalidTurnAmount, t.Amount, maxPerTurn)
	}
	return nil
}

// GiveUp skips the user's turn and lets the opponent move.
type GiveUp struct{}

func (GiveUp) action() {}

// Restart replaces the current game with a new one.
type Restart struct {
	Config Config
}

func (Restart) action() {}

// Event is the reply to a Turn or GiveUp.
type Event interface {
	event()
}

// CounterTurn reports how many pebbles the opponent removed.
type CounterTurn struct {
	Amount uint32
}

func (CounterTurn) event() {}

func (e CounterTurn) String() string {
	return fmt.Sprintf("counter %d", e.Amount)
}

// Won reports the winner of a finished game.
type Won struct {
	Player Player
}

func (Won) event() {}

func (e Won) String() string {
	return fmt.Sprintf("won %s", e.Player)
}
