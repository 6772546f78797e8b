package texasholdem

import (
	"encoding/json"

	"handsettle-server/pkg/deck"
)

// Seat is one of the six seats at the table
type Seat struct {
	index         int
	startingStack int
	stack         int
	cards         deck.Hand

	folded bool
	allIn  bool

	streetContribution int
	totalContribution  int

	// hasActed is true once the seat acted after the last full raise
	hasActed bool
	// raiseCapped is set when a short all-in did not reopen the betting for this seat
	raiseCapped bool
}

type seatJSON struct {
	Index              int       `json:"index"`
	StartingStack      int       `json:"startingStack"`
	Stack              int       `json:"stack"`
	Cards              deck.Hand `json:"cards"`
	Folded             bool      `json:"folded"`
	AllIn              bool      `json:"allIn"`
	StreetContribution int       `json:"streetContribution"`
	TotalContribution  int       `json:"totalContribution"`
}

func newSeat(index, stack int, cards deck.Hand) *Seat {
	return &Seat{
		index:         index,
		startingStack: stack,
		stack:         stack,
		cards:         cards.Clone(),
	}
}

// Index returns the seat number, 0 through 5
func (s *Seat) Index() int {
	return s.index
}

// StartingStack returns the stack the seat started the hand with
func (s *Seat) StartingStack() int {
	return s.startingStack
}

// Stack returns the chips the seat has behind
func (s *Seat) Stack() int {
	return s.stack
}

// Cards returns the hole cards
func (s *Seat) Cards() deck.Hand {
	return s.cards.Clone()
}

// IsFolded returns true if the seat folded or sat out
func (s *Seat) IsFolded() bool {
	return s.folded
}

// IsAllIn returns true if the seat has committed its whole stack
func (s *Seat) IsAllIn() bool {
	return s.allIn
}

// StreetContribution returns what the seat has put in on the current street
func (s *Seat) StreetContribution() int {
	return s.streetContribution
}

// TotalContribution returns what the seat has put in across the hand
func (s *Seat) TotalContribution() int {
	return s.totalContribution
}

// Payoff returns the net result of the hand for the seat
func (s *Seat) Payoff() int {
	return s.stack - s.startingStack
}

// canAct returns true if the seat can check, call, bet, raise or fold
func (s *Seat) canAct() bool {
	return !s.folded && !s.allIn
}

// newStreet is called when a betting round starts
func (s *Seat) newStreet() {
	s.streetContribution = 0
	s.hasActed = false
	s.raiseCapped = false
}

// MarshalJSON encodes JSON
func (s *Seat) MarshalJSON() ([]byte, error) {
	return json.Marshal(seatJSON{
		Index:              s.index,
		StartingStack:      s.startingStack,
		Stack:              s.stack,
		Cards:              s.cards,
		Folded:             s.folded,
		AllIn:              s.allIn,
		StreetContribution: s.streetContribution,
		TotalContribution:  s.totalContribution,
	})
}

// potmanager.Participant interface

func (s *Seat) ID() int {
	return s.index
}

func (s *Seat) Balance() int {
	return s.stack
}

func (s *Seat) AdjustBalance(amount int) {
	s.stack += amount
}
