package pebbles

// Strategy decides how many pebbles the opponent removes.
type Strategy interface {
	// Choose returns the removal amount for the given pile. random is only
	// meaningful when NeedsRandom reports true.
	Choose(remaining, maxPerTurn, random uint32) uint32

	// NeedsRandom reports whether Choose consumes a random value.
	NeedsRandom() bool
}

// EasyStrategy removes a random amount in [0, maxPerTurn], or the whole pile
// once it fits in a single turn. Removing zero pebbles is a legal move.
type EasyStrategy struct{}

// Choose implements Strategy.
func (EasyStrategy) Choose(remaining, maxPerTurn, random uint32) uint32 {
	if maxPerTurn < remaining {
		return random % (maxPerTurn + 1)
	}
	return remaining
}

// NeedsRandom implements Strategy.
func (EasyStrategy) NeedsRandom() bool { return true }

// HardStrategy plays the closed-form optimal move: leave a multiple of
// maxPerTurn+1 behind, or take a single pebble when already on one.
type HardStrategy struct{}

// Choose implements Strategy.
func (HardStrategy) Choose(remaining, maxPerTurn, _ uint32) uint32 {
	remainder := remaining % (maxPerTurn + 1)
	if remainder == 0 {
		return 1
	}
	return remainder
}

// NeedsRandom implements Strategy.
func (HardStrategy) NeedsRandom() bool { return false }

// StrategyFor returns the opponent strategy for a difficulty.
func StrategyFor(d DifficultyLevel) Strategy {
	if d == Hard {
		return HardStrategy{}
	}
	return EasyStrategy{}
}
