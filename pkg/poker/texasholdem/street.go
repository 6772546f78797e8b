package texasholdem

import (
	"encoding/json"

	"handsettle-server/pkg/poker/action"
)

// Street represents where the hand is at
type Street int

// constants for Street
const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	Complete
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case Complete:
		return "complete"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Street) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}

// isBettingRound returns true for preflop, flop, turn and river
func (s Street) isBettingRound() bool {
	return s >= Preflop && s <= River
}

// nextDeal returns the deal that moves the hand off of this street
func (s Street) nextDeal() (action.Street, bool) {
	switch s {
	case Preflop:
		return action.Flop, true
	case Flop:
		return action.Turn, true
	case Turn:
		return action.River, true
	}

	return "", false
}
