package potmanager

// Participant provides an interface for retrieving and adjusting a participants balance
type Participant interface {
	ID() int
	Balance() int
	AdjustBalance(amount int)
}

// participantInPot is a participant in a pot
type participantInPot struct {
	Participant
	// tableIndex is where the player is seated at the table
	tableIndex int
	// contribution is everything the participant has put in across all streets
	contribution int
	isAllIn      bool
	isFolded     bool
}

// isEligible returns true if the participant can still win pots
func (p *participantInPot) isEligible() bool {
	return !p.isFolded
}
