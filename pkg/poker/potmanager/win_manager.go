package potmanager

import (
	"sort"
)

type tier struct {
	strength     int
	participants []Participant
}

// WinManager groups participants by hand strength
type WinManager map[int]*tier

// NewWinManager returns a new WinManager
func NewWinManager() WinManager {
	return make(WinManager)
}

// AddParticipant records the strength of a participant's hand
func (w WinManager) AddParticipant(p Participant, handStrength int) {
	t, ok := w[handStrength]
	if !ok {
		t = &tier{
			strength:     handStrength,
			participants: make([]Participant, 0),
		}
	}

	t.participants = append(t.participants, p)
	w[handStrength] = t
}

// GetSortedTiers returns the participants grouped by strength, the strongest group first
// Participants within a group are ordered by ID
func (w WinManager) GetSortedTiers() [][]Participant {
	tiers := make([]*tier, 0, len(w))
	for _, tier := range w {
		tiers = append(tiers, tier)
	}

	sort.Sort(sort.Reverse(sortByStrength(tiers)))

	tieredParticipants := make([][]Participant, len(tiers))
	for i, t := range tiers {
		participants := append([]Participant(nil), t.participants...)
		sort.Slice(participants, func(i, j int) bool {
			return participants[i].ID() < participants[j].ID()
		})

		tieredParticipants[i] = participants
	}

	return tieredParticipants
}

type sortByStrength []*tier

func (s sortByStrength) Len() int {
	return len(s)
}

func (s sortByStrength) Less(i, j int) bool {
	return s[i].strength < s[j].strength
}

func (s sortByStrength) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
