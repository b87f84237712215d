package pebbles

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/vovakirdan/pebbles/internal/rng"
)

// Controller owns the single live game and applies actions to it.
// It is not safe for concurrent use; hosts serialize calls.
type Controller struct {
	rng      rng.Source
	logger   *log.Logger
	recorder Recorder
	clock    quartz.Clock
	newID    func() string

	current *game // nil until the first Initialize
}

// game bundles the state with bookkeeping that is not part of GameState.
type game struct {
	id           string
	state        GameState
	draws        int
	startedAt    time.Time
	userTurns    int
	programTurns int
	giveUps      int
}

func (g *game) copy() *game {
	c := *g
	c.state = g.state.clone()
	return &c
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the sink for finished games.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) {
		c.recorder = r
	}
}

// WithClock sets the clock used to timestamp results.
func WithClock(clock quartz.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithIDGenerator overrides how game IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewController creates a controller drawing randomness from src.
// Initialize must be called before Handle or State.
func NewController(src rng.Source, opts ...Option) *Controller {
	c := &Controller{
		rng:    src,
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize validates cfg and starts a new game, replacing any existing one.
// If the opponent is chosen to move first, its turn is played before returning.
func (c *Controller) Initialize(cfg Config) error {
	next, err := c.newGame(cfg)
	if err != nil {
		return err
	}
	if c.current != nil && !c.current.state.IsOver() {
		c.logger.Info("game abandoned", "game", c.current.id, "remaining", c.current.state.PebblesRemaining)
	}
	c.commit(next)
	c.logger.Info("game started",
		"game", next.id,
		"difficulty", cfg.Difficulty,
		"pebbles", cfg.PebblesCount,
		"max", cfg.MaxPebblesPerTurn,
		"first", next.state.FirstPlayer,
	)
	return nil
}

// Handle applies an action to the live game.
// Turn and GiveUp return the opponent's reply; Restart returns a nil Event.
// On error the game is left exactly as it was.
func (c *Controller) Handle(action Action) (Event, error) {
	if restart, ok := action.(Restart); ok {
		return nil, c.Initialize(restart.Config)
	}

	if c.current == nil {
		return nil, ErrNotInitialized
	}
	if c.current.state.IsOver() {
		return nil, fmt.Errorf("%w: %s already won", ErrGameOver, c.current.state.Winner)
	}

	next := c.current.copy()

	switch a := action.(type) {
	case Turn:
		if err := a.Validate(next.state.MaxPebblesPerTurn); err != nil {
			return nil, err
		}
		if a.Amount > next.state.PebblesRemaining {
			return nil, fmt.Errorf("%w: only %d pebbles remaining", ErrInvalidTurnAmount, next.state.PebblesRemaining)
		}
		next.state.applyUserTurn(a.Amount)
		next.userTurns++
		c.logger.Debug("user turn", "game", next.id, "amount", a.Amount, "remaining", next.state.PebblesRemaining)
		if next.state.IsOver() {
			c.commit(next)
			return Won{Player: User}, nil
		}

	case GiveUp:
		next.giveUps++
		c.logger.Debug("user gave up turn", "game", next.id)

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}

	amount, err := c.opponentTurn(next)
	if err != nil {
		return nil, err
	}
	c.commit(next)

	if next.state.IsOver() {
		return Won{Player: Program}, nil
	}
	return CounterTurn{Amount: amount}, nil
}

// State returns a copy of the live game state.
func (c *Controller) State() (GameState, error) {
	if c.current == nil {
		return GameState{}, ErrNotInitialized
	}
	return c.current.state.clone(), nil
}

// GameID returns the identifier of the live game, or "" before Initialize.
func (c *Controller) GameID() string {
	if c.current == nil {
		return ""
	}
	return c.current.id
}

// newGame builds a game from cfg without touching the live one.
func (c *Controller) newGame(cfg Config) (*game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &game{
		id:        c.newID(),
		state:     newGameState(cfg),
		startedAt: c.clock.Now(),
	}

	r, err := c.draw(g)
	if err != nil {
		return nil, err
	}
	g.state.chooseFirstPlayer(r)

	if g.state.FirstPlayer == Program {
		if _, err := c.opponentTurn(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// opponentTurn plays the opponent's move on g.
func (c *Controller) opponentTurn(g *game) (uint32, error) {
	strategy := StrategyFor(g.state.Difficulty)

	var r uint32
	if strategy.NeedsRandom() {
		var err error
		if r, err = c.draw(g); err != nil {
			return 0, err
		}
	}

	amount := g.state.applyOpponentTurn(strategy, r)
	g.programTurns++
	c.logger.Debug("program turn", "game", g.id, "amount", amount, "remaining", g.state.PebblesRemaining)
	return amount, nil
}

// draw takes the next random value, salted with the game ID and draw number.
func (c *Controller) draw(g *game) (uint32, error) {
	salt := fmt.Sprintf("%s/%d", g.id, g.draws)
	g.draws++

	v, err := c.rng.Uint32(salt)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRandomUnavailable, err)
	}
	return v, nil
}

// commit makes g the live game and records it if it just finished.
func (c *Controller) commit(g *game) {
	c.current = g
	if g.state.IsOver() {
		c.finish(g)
	}
}

func (c *Controller) finish(g *game) {
	res := Result{
		GameID:            g.id,
		Difficulty:        g.state.Difficulty,
		PebblesCount:      g.state.PebblesCount,
		MaxPebblesPerTurn: g.state.MaxPebblesPerTurn,
		FirstPlayer:       g.state.FirstPlayer,
		Winner:            *g.state.Winner,
		UserTurns:         g.userTurns,
		ProgramTurns:      g.programTurns,
		GiveUps:           g.giveUps,
		StartedAt:         g.startedAt,
		FinishedAt:        c.clock.Now(),
	}
	c.logger.Info("game over", "game", g.id, "winner", res.Winner, "turns", res.UserTurns+res.ProgramTurns)

	if c.recorder == nil {
		return
	}
	if err := c.recorder.RecordResult(res); err != nil {
		c.logger.Warn("could not record result", "game", g.id, "error", err)
	}
}
