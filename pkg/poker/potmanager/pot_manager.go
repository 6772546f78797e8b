package potmanager

import (
	"errors"
	"fmt"
	"sort"
)

// ErrParticipantNotFound is an error when a participant with a provided ID cannot be found
var ErrParticipantNotFound = errors.New("participant not found")

// ErrPotsPaid is returned when the pots are touched after they have been paid
var ErrPotsPaid = errors.New("pots have already been paid")

// PotManager keeps track of every chip participants put in and splits them into pots
// Chips move from a participant's balance into the ledger, so the balances plus Total() never change
type PotManager struct {
	participants map[int]*participantInPot
	tableOrder   []*participantInPot
	isPaid       bool
}

// New instantiates a new PotManager
func New() *PotManager {
	return &PotManager{
		participants: make(map[int]*participantInPot),
		tableOrder:   make([]*participantInPot, 0),
	}
}

// SeatParticipant adds a participant to the table in the order called
// This method must be called in order of the players
func (p *PotManager) SeatParticipant(pt Participant) {
	pip := &participantInPot{
		Participant: pt,
		tableIndex:  len(p.tableOrder),
	}

	p.participants[pt.ID()] = pip
	p.tableOrder = append(p.tableOrder, pip)
}

// Contribute moves up to amount from the participant's balance into the pot
// The participant is all-in once the balance reaches zero. The amount actually moved is returned.
func (p *PotManager) Contribute(pt Participant, amount int) (int, error) {
	pip, err := p.getParticipantInPot(pt)
	if err != nil {
		return 0, err
	}

	if amount < 0 {
		return 0, fmt.Errorf("cannot contribute a negative amount: %d", amount)
	}

	if pip.isFolded {
		return 0, fmt.Errorf("participant %d has folded", pt.ID())
	}

	if amount >= pip.Balance() {
		amount = pip.Balance()
		pip.isAllIn = true
	}

	pip.contribution += amount
	pip.Participant.AdjustBalance(-1 * amount)

	return amount, nil
}

// Fold removes the participant from every pot it could win
// Chips already contributed stay in the pots
func (p *PotManager) Fold(pt Participant) error {
	pip, err := p.getParticipantInPot(pt)
	if err != nil {
		return err
	}

	pip.isFolded = true
	return nil
}

// Contribution returns the amount the participant has put in so far
func (p *PotManager) Contribution(pt Participant) int {
	pip, ok := p.participants[pt.ID()]
	if !ok {
		return 0
	}

	return pip.contribution
}

// IsAllIn returns true if the participant has nothing left to contribute
func (p *PotManager) IsAllIn(pt Participant) bool {
	pip, ok := p.participants[pt.ID()]
	return ok && pip.isAllIn
}

// Total returns the chips held in the pots
func (p *PotManager) Total() int {
	if p.isPaid {
		return 0
	}

	total := 0
	for _, pip := range p.tableOrder {
		total += pip.contribution
	}

	return total
}

// Pots builds the main pot and any side pots from the contributions so far
// Each distinct contribution level closes a slice; everyone that put in at least that level pays into it, but
// only participants who have not folded can win it.
func (p *PotManager) Pots() Pots {
	if p.isPaid {
		return Pots{}
	}

	levels := make([]int, 0, len(p.tableOrder))
	seen := make(map[int]bool)
	for _, pip := range p.tableOrder {
		if pip.contribution > 0 && !seen[pip.contribution] {
			seen[pip.contribution] = true
			levels = append(levels, pip.contribution)
		}
	}
	sort.Ints(levels)

	pots := make(Pots, 0, len(levels))
	carry := 0
	prevLevel := 0
	for _, level := range levels {
		amount := carry
		eligible := make([]Participant, 0, len(p.tableOrder))
		for _, pip := range p.tableOrder {
			if pip.contribution <= prevLevel {
				continue
			}

			amount += min(pip.contribution, level) - prevLevel
			if pip.contribution >= level && pip.isEligible() {
				eligible = append(eligible, pip.Participant)
			}
		}
		prevLevel = level
		carry = 0

		var last *Pot
		if len(pots) > 0 {
			last = pots[len(pots)-1]
		}

		switch {
		case len(eligible) == 0 && last == nil:
			// nobody can win this slice yet, roll it into the next one
			carry = amount
		case len(eligible) == 0, last != nil && sameParticipants(last.Eligible, eligible):
			last.Amount += amount
		default:
			pots = append(pots, &Pot{
				Amount:   amount,
				Eligible: eligible,
			})
		}
	}

	if carry > 0 && len(pots) > 0 {
		pots[len(pots)-1].Amount += carry
	}

	return pots
}

// PayWinners awards every pot to the best tier of winners that is eligible for it
// winners is ordered strongest first, as returned by WinManager.GetSortedTiers(). Chips that do not split evenly
// are handed out one at a time in table order, starting with the table index oddChipStart.
// The paid pots and the total payout per participant ID are returned.
func (p *PotManager) PayWinners(winners [][]Participant, oddChipStart int) (Pots, map[int]int, error) {
	if p.isPaid {
		return nil, nil, ErrPotsPaid
	}

	pots := p.Pots()
	payouts := make(map[int]int)

	for i, pot := range pots {
		potWinners := p.potWinners(pot, winners)
		if len(potWinners) == 0 {
			return nil, nil, fmt.Errorf("no winner is eligible for pot %d", i)
		}

		sort.Sort(sortByTableIndex{pips: potWinners, start: oddChipStart, size: len(p.tableOrder)})

		share := pot.Amount / len(potWinners)
		remainder := pot.Amount % len(potWinners)

		pot.Winners = make([]Participant, len(potWinners))
		for j, pip := range potWinners {
			winnings := share
			if j < remainder {
				winnings++
			}

			pip.Participant.AdjustBalance(winnings)
			payouts[pip.ID()] += winnings
			pot.Winners[j] = pip.Participant
		}
	}

	p.isPaid = true

	return pots, payouts, nil
}

// potWinners returns the first tier that has at least one participant eligible for the pot
func (p *PotManager) potWinners(pot *Pot, winners [][]Participant) []*participantInPot {
	eligible := make(map[int]bool, len(pot.Eligible))
	for _, pt := range pot.Eligible {
		eligible[pt.ID()] = true
	}

	for _, tier := range winners {
		pips := make([]*participantInPot, 0, len(tier))
		for _, pt := range tier {
			if eligible[pt.ID()] {
				pips = append(pips, p.participants[pt.ID()])
			}
		}

		if len(pips) > 0 {
			return pips
		}
	}

	return nil
}

func (p *PotManager) getParticipantInPot(pt Participant) (*participantInPot, error) {
	if p.isPaid {
		return nil, ErrPotsPaid
	}

	pip, ok := p.participants[pt.ID()]
	if !ok {
		return nil, ErrParticipantNotFound
	}

	return pip, nil
}

func sameParticipants(a, b []Participant) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].ID() != b[i].ID() {
			return false
		}
	}

	return true
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}

// sortByTableIndex orders participants clockwise, starting at start
type sortByTableIndex struct {
	pips  []*participantInPot
	start int
	size  int
}

func (s sortByTableIndex) Len() int {
	return len(s.pips)
}

func (s sortByTableIndex) Less(i, j int) bool {
	return s.distance(s.pips[i]) < s.distance(s.pips[j])
}

func (s sortByTableIndex) Swap(i, j int) {
	s.pips[i], s.pips[j] = s.pips[j], s.pips[i]
}

func (s sortByTableIndex) distance(pip *participantInPot) int {
	return ((pip.tableIndex-s.start)%s.size + s.size) % s.size
}
