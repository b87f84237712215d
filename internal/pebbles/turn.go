package pebbles

// applyOpponentTurn removes the strategy's amount and records a Program win
// when the pile empties. Returns the amount removed.
func (s *GameState) applyOpponentTurn(strategy Strategy, random uint32) uint32 {
	amount := strategy.Choose(s.PebblesRemaining, s.MaxPebblesPerTurn, random)
	s.PebblesRemaining -= amount
	if s.PebblesRemaining == 0 {
		s.setWinner(Program)
	}
	return amount
}

// applyUserTurn removes amount and records a User win when the pile empties.
// The caller guarantees amount <= PebblesRemaining.
func (s *GameState) applyUserTurn(amount uint32) {
	s.PebblesRemaining -= amount
	if s.PebblesRemaining == 0 {
		s.setWinner(User)
	}
}

// chooseFirstPlayer picks the User on an even draw and the Program on an odd one.
func (s *GameState) chooseFirstPlayer(random uint32) {
	if random%2 == 0 {
		s.FirstPlayer = User
	} else {
		s.FirstPlayer = Program
	}
}

func (s *GameState) setWinner(p Player) {
	s.Winner = &p
}
