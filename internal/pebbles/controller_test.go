package pebbles

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pebbles/internal/rng"
)

type recorderFunc func(Result) error

func (f recorderFunc) RecordResult(r Result) error { return f(r) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("game-%d", n)
	}
}

func newTestController(t *testing.T, src rng.Source, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithIDGenerator(sequentialIDs())}, opts...)
	return NewController(src, opts...)
}

func mustState(t *testing.T, c *Controller) GameState {
	t.Helper()
	s, err := c.State()
	require.NoError(t, err)
	return s
}

func TestControllerInitialize(t *testing.T) {
	c := newTestController(t, rng.NewSequence(0))

	require.NoError(t, c.Initialize(Config{Difficulty: Easy, PebblesCount: 100, MaxPebblesPerTurn: 20}))

	s := mustState(t, c)
	assert.Equal(t, GameState{
		PebblesCount:      100,
		MaxPebblesPerTurn: 20,
		PebblesRemaining:  100,
		Difficulty:        Easy,
		FirstPlayer:       User,
	}, s)
	assert.Equal(t, "game-1", c.GameID())
}

func TestControllerInitializeRejectsInvalidConfig(t *testing.T) {
	src := rng.NewSequence(0)
	c := newTestController(t, src)

	err := c.Initialize(Config{Difficulty: Easy, PebblesCount: 20, MaxPebblesPerTurn: 50})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = c.State()
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Equal(t, 1, src.Remaining(), "validation must happen before any draw")
}

func TestControllerBeforeInitialize(t *testing.T) {
	c := newTestController(t, rng.NewSequence())

	_, err := c.Handle(Turn{Amount: 1})
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = c.Handle(GiveUp{})
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.Empty(t, c.GameID())
}

func TestControllerProgramMovesFirst(t *testing.T) {
	src := rng.NewSequence(1)
	c := newTestController(t, src)

	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 29, MaxPebblesPerTurn: 10}))

	s := mustState(t, c)
	assert.Equal(t, Program, s.FirstPlayer)
	assert.Equal(t, uint32(22), s.PebblesRemaining)
	assert.Nil(t, s.Winner)
	assert.Equal(t, 0, src.Remaining())
}

func TestControllerHardGiveUp(t *testing.T) {
	c := newTestController(t, rng.NewSequence(0))
	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 29, MaxPebblesPerTurn: 10}))

	ev, err := c.Handle(GiveUp{})
	require.NoError(t, err)
	assert.Equal(t, CounterTurn{Amount: 7}, ev)
	assert.Equal(t, uint32(22), mustState(t, c).PebblesRemaining)
}

func TestControllerTurnRejectsOutOfRange(t *testing.T) {
	c := newTestController(t, rng.NewSequence(0))
	require.NoError(t, c.Initialize(Config{Difficulty: Easy, PebblesCount: 50, MaxPebblesPerTurn: 10}))
	before := mustState(t, c)

	for _, amount := range []uint32{0, 11, 15} {
		_, err := c.Handle(Turn{Amount: amount})
		assert.ErrorIs(t, err, ErrInvalidTurnAmount, "amount %d", amount)
		assert.Equal(t, before, mustState(t, c))
	}
}

func TestControllerProgramWinsOnCounter(t *testing.T) {
	// Hard opponent moves first from 12/10 and takes 1, leaving 11.
	c := newTestController(t, rng.NewSequence(1))
	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 12, MaxPebblesPerTurn: 10}))
	require.Equal(t, uint32(11), mustState(t, c).PebblesRemaining)

	// 11 - 5 leaves 6, which the hard opponent takes in one go.
	ev, err := c.Handle(Turn{Amount: 5})
	require.NoError(t, err)
	assert.Equal(t, Won{Player: Program}, ev)

	s := mustState(t, c)
	assert.Equal(t, uint32(0), s.PebblesRemaining)
	require.NotNil(t, s.Winner)
	assert.Equal(t, Program, *s.Winner)
}

func TestControllerUserTurnLargerThanPile(t *testing.T) {
	c := newTestController(t, rng.NewSequence(0, 9))
	require.NoError(t, c.Initialize(Config{Difficulty: Easy, PebblesCount: 15, MaxPebblesPerTurn: 10}))

	// 15 - 2 = 13, easy opponent takes 9 % 11 = 9, leaving 4.
	ev, err := c.Handle(Turn{Amount: 2})
	require.NoError(t, err)
	require.Equal(t, CounterTurn{Amount: 9}, ev)

	_, err = c.Handle(Turn{Amount: 5})
	require.ErrorIs(t, err, ErrInvalidTurnAmount)
	assert.Equal(t, uint32(4), mustState(t, c).PebblesRemaining)

	ev, err = c.Handle(Turn{Amount: 4})
	require.NoError(t, err)
	assert.Equal(t, Won{Player: User}, ev)
}

func TestControllerRandomFailureLeavesStateUnchanged(t *testing.T) {
	c := newTestController(t, rng.NewSequence(0))
	require.NoError(t, c.Initialize(Config{Difficulty: Easy, PebblesCount: 50, MaxPebblesPerTurn: 10}))
	before := mustState(t, c)

	_, err := c.Handle(Turn{Amount: 3})
	require.ErrorIs(t, err, ErrRandomUnavailable)
	assert.True(t, errors.Is(err, rng.ErrUnavailable))
	assert.Equal(t, before, mustState(t, c))

	_, err = c.Handle(GiveUp{})
	require.ErrorIs(t, err, ErrRandomUnavailable)
	assert.Equal(t, before, mustState(t, c))
}

func TestControllerRestartRandomFailureKeepsGame(t *testing.T) {
	c := newTestController(t, rng.NewSequence(0))
	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 30, MaxPebblesPerTurn: 4}))

	_, err := c.Handle(Restart{Config: Config{Difficulty: Easy, PebblesCount: 60, MaxPebblesPerTurn: 20}})
	require.ErrorIs(t, err, ErrRandomUnavailable)
	assert.Equal(t, uint32(30), mustState(t, c).PebblesCount)
	assert.Equal(t, "game-1", c.GameID())
}

func TestControllerRestartResetsFinishedGame(t *testing.T) {
	c := newTestController(t, rng.NewSequence(0, 0))
	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 5, MaxPebblesPerTurn: 4}))

	ev, err := c.Handle(Turn{Amount: 4})
	require.NoError(t, err)
	assert.Equal(t, Won{Player: Program}, ev)

	ev, err = c.Handle(Restart{Config: Config{Difficulty: Hard, PebblesCount: 9, MaxPebblesPerTurn: 2}})
	require.NoError(t, err)
	assert.Nil(t, ev)

	s := mustState(t, c)
	assert.Equal(t, uint32(9), s.PebblesRemaining)
	assert.Nil(t, s.Winner)
	assert.Equal(t, "game-2", c.GameID())
}

func TestControllerUnknownAction(t *testing.T) {
	type bogus struct{ Turn }

	c := newTestController(t, rng.NewSequence(0))
	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 5, MaxPebblesPerTurn: 4}))

	_, err := c.Handle(bogus{})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = c.Handle(nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestControllerStateIsSnapshot(t *testing.T) {
	c := newTestController(t, rng.NewSequence(0))
	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 5, MaxPebblesPerTurn: 4}))
	_, err := c.Handle(Turn{Amount: 4})
	require.NoError(t, err)

	s := mustState(t, c)
	require.NotNil(t, s.Winner)
	*s.Winner = User
	s.PebblesRemaining = 99

	fresh := mustState(t, c)
	assert.Equal(t, Program, *fresh.Winner)
	assert.Equal(t, uint32(0), fresh.PebblesRemaining)
}

func TestControllerSaltsAreUnique(t *testing.T) {
	src := rng.NewSequence(0, 1, 2, 3)
	c := newTestController(t, src)
	require.NoError(t, c.Initialize(Config{Difficulty: Easy, PebblesCount: 100, MaxPebblesPerTurn: 20}))
	for i := 0; i < 3; i++ {
		_, err := c.Handle(GiveUp{})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"game-1/0", "game-1/1", "game-1/2", "game-1/3"}, src.Salts())
}

func TestControllerRecordsResult(t *testing.T) {
	ctx := context.Background()
	clock := quartz.NewMock(t)
	start := clock.Now()

	var results []Result
	rec := recorderFunc(func(r Result) error {
		results = append(results, r)
		return nil
	})

	c := newTestController(t, rng.NewSequence(0), WithRecorder(rec), WithClock(clock))
	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 8, MaxPebblesPerTurn: 3}))

	// 8 -> user 2 -> 6, hard takes 2 -> 4; give up, hard on 4 takes 1 -> 3; user takes 3.
	clock.Advance(10 * time.Second).MustWait(ctx)
	ev, err := c.Handle(Turn{Amount: 2})
	require.NoError(t, err)
	require.Equal(t, CounterTurn{Amount: 2}, ev)

	ev, err = c.Handle(GiveUp{})
	require.NoError(t, err)
	require.Equal(t, CounterTurn{Amount: 1}, ev)
	assert.Empty(t, results)

	clock.Advance(20 * time.Second).MustWait(ctx)
	ev, err = c.Handle(Turn{Amount: 3})
	require.NoError(t, err)
	require.Equal(t, Won{Player: User}, ev)

	require.Len(t, results, 1)
	assert.Equal(t, Result{
		GameID:            "game-1",
		Difficulty:        Hard,
		PebblesCount:      8,
		MaxPebblesPerTurn: 3,
		FirstPlayer:       User,
		Winner:            User,
		UserTurns:         2,
		ProgramTurns:      2,
		GiveUps:           1,
		StartedAt:         start,
		FinishedAt:        start.Add(30 * time.Second),
	}, results[0])
	assert.Equal(t, 30*time.Second, results[0].Duration())

	// Rejected actions after the end must not record again.
	_, err = c.Handle(GiveUp{})
	require.ErrorIs(t, err, ErrGameOver)
	assert.Len(t, results, 1)
}

func TestControllerRecorderErrorIsNotSurfaced(t *testing.T) {
	rec := recorderFunc(func(Result) error { return errors.New("disk full") })

	c := newTestController(t, rng.NewSequence(0), WithRecorder(rec))
	require.NoError(t, c.Initialize(Config{Difficulty: Hard, PebblesCount: 5, MaxPebblesPerTurn: 4}))

	ev, err := c.Handle(Turn{Amount: 4})
	require.NoError(t, err)
	assert.Equal(t, Won{Player: Program}, ev)
}

// TestControllerFullGame replays a complete easy game with fixed draws:
// restart validation, a rejected turn, counter turns, a user win, rejected
// actions after the win and a restart where the program moves first.
func TestControllerFullGame(t *testing.T) {
	src := rng.NewSequence(
		0,  // first player for 100/20: user
		0,  // first player for 50/10: user
		8,  // counter to Turn(6)
		7,  // counter to GiveUp
		3,  // counter to Turn(7)
		4,  // counter to Turn(8)
		1,  // first player for 60/20: program
		14, // program opening move
	)
	c := newTestController(t, src)

	require.NoError(t, c.Initialize(Config{Difficulty: Easy, PebblesCount: 100, MaxPebblesPerTurn: 20}))
	s := mustState(t, c)
	assert.Equal(t, uint32(100), s.PebblesRemaining)
	assert.Nil(t, s.Winner)

	_, err := c.Handle(Restart{Config: Config{Difficulty: Easy, PebblesCount: 5, MaxPebblesPerTurn: 10}})
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Equal(t, s, mustState(t, c))

	_, err = c.Handle(Restart{Config: Config{Difficulty: Easy, PebblesCount: 50, MaxPebblesPerTurn: 10}})
	require.NoError(t, err)
	assert.Equal(t, GameState{PebblesCount: 50, MaxPebblesPerTurn: 10, PebblesRemaining: 50}, mustState(t, c))

	_, err = c.Handle(Turn{Amount: 15})
	require.ErrorIs(t, err, ErrInvalidTurnAmount)

	steps := []struct {
		action Action
		want   Event
	}{
		{Turn{Amount: 6}, CounterTurn{Amount: 8}},
		{GiveUp{}, CounterTurn{Amount: 7}},
	}
	for _, step := range steps {
		ev, err := c.Handle(step.action)
		require.NoError(t, err)
		assert.Equal(t, step.want, ev)
	}
	assert.Equal(t, uint32(29), mustState(t, c).PebblesRemaining)

	steps = []struct {
		action Action
		want   Event
	}{
		{Turn{Amount: 7}, CounterTurn{Amount: 3}},
		{Turn{Amount: 8}, CounterTurn{Amount: 4}},
		{Turn{Amount: 7}, Won{Player: User}},
	}
	for _, step := range steps {
		ev, err := c.Handle(step.action)
		require.NoError(t, err)
		assert.Equal(t, step.want, ev)
	}

	won := mustState(t, c)
	require.NotNil(t, won.Winner)
	assert.Equal(t, User, *won.Winner)
	assert.Equal(t, uint32(0), won.PebblesRemaining)

	_, err = c.Handle(Turn{Amount: 1})
	require.ErrorIs(t, err, ErrGameOver)
	_, err = c.Handle(GiveUp{})
	require.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, won, mustState(t, c))

	_, err = c.Handle(Restart{Config: Config{Difficulty: Easy, PebblesCount: 60, MaxPebblesPerTurn: 20}})
	require.NoError(t, err)
	assert.Equal(t, GameState{
		PebblesCount:      60,
		MaxPebblesPerTurn: 20,
		PebblesRemaining:  46,
		Difficulty:        Easy,
		FirstPlayer:       Program,
	}, mustState(t, c))
	assert.Equal(t, 0, src.Remaining())
}

func TestControllerEasyCounterStaysInRange(t *testing.T) {
	c := newTestController(t, rng.NewSeeded(99))
	require.NoError(t, c.Initialize(Config{Difficulty: Easy, PebblesCount: 100, MaxPebblesPerTurn: 20}))
	before := mustState(t, c).PebblesRemaining

	ev, err := c.Handle(Turn{Amount: 6})
	require.NoError(t, err)

	counter, ok := ev.(CounterTurn)
	require.True(t, ok, "expected CounterTurn, got %T", ev)
	assert.LessOrEqual(t, counter.Amount, uint32(20))
	assert.Equal(t, before-6-counter.Amount, mustState(t, c).PebblesRemaining)
}
