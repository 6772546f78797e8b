package potmanager

import "encoding/json"

// Pot is a main or side pot
// Eligible participants are the ones that can win the pot. Winners is only set once the pot has been paid.
type Pot struct {
	Amount   int
	Eligible []Participant
	Winners  []Participant
}

type potJSON struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
	Winners  []int `json:"winners,omitempty"`
}

// MarshalJSON provides custom marshalling
func (p Pot) MarshalJSON() ([]byte, error) {
	return json.Marshal(potJSON{
		Amount:   p.Amount,
		Eligible: participantIDs(p.Eligible),
		Winners:  participantIDs(p.Winners),
	})
}

// EligibleIDs returns the IDs of the participants eligible to win the pot
func (p *Pot) EligibleIDs() []int {
	return participantIDs(p.Eligible)
}

// WinnerIDs returns the IDs of the participants that won the pot
func (p *Pot) WinnerIDs() []int {
	return participantIDs(p.Winners)
}

func participantIDs(participants []Participant) []int {
	if participants == nil {
		return nil
	}

	ids := make([]int, len(participants))
	for i, pt := range participants {
		ids[i] = pt.ID()
	}

	return ids
}

// Pots is a collection of pots, the main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}
