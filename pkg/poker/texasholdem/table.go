package texasholdem

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"handsettle-server/pkg/deck"
	"handsettle-server/pkg/handerr"
	"handsettle-server/pkg/poker/action"
	"handsettle-server/pkg/poker/potmanager"
)

// SeatCount is the number of seats at the table
const SeatCount = 6

// MaxStack is the largest stack a seat may bring to the hand
// Six full stacks still fit in an int, so no pot or chip total can overflow.
const MaxStack = math.MaxInt / SeatCount

// noActor is the actor index when nobody is on the clock
const noActor = -1

// Options configures the blinds
type Options struct {
	SmallBlind int
	BigBlind   int
}

// DefaultOptions returns the default options for No-Limit Texas Hold'em
func DefaultOptions() Options {
	return Options{
		SmallBlind: 20,
		BigBlind:   40,
	}
}

// Positions are the button and blind seats
// They are not required to be next to each other
type Positions struct {
	Button     int `json:"button"`
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
}

// Table is a single hand of No-Limit Texas Hold'em
// A table is built for one hand, mutated one command at a time, and then discarded
type Table struct {
	logger     logrus.FieldLogger
	options    Options
	positions  Positions
	seats      []*Seat
	deck       *deck.Deck
	potManager *potmanager.PotManager

	street     Street
	board      deck.Hand
	currentBet int
	minRaise   int
	actor      int

	// uncontested is set when every seat but one folded
	uncontested bool
}

// NewTable seats six players, posts the blinds and deals the hole cards
// Seats with an empty stack sit the hand out.
func NewTable(logger logrus.FieldLogger, stacks []int, holeCards []deck.Hand, positions Positions, opts Options) (*Table, error) {
	if err := validate(stacks, holeCards, positions, opts); err != nil {
		return nil, err
	}

	t := &Table{
		logger:     logger,
		options:    opts,
		positions:  positions,
		seats:      make([]*Seat, SeatCount),
		deck:       deck.New(),
		potManager: potmanager.New(),
		street:     Preflop,
		board:      make(deck.Hand, 0, 5),
		actor:      noActor,
	}

	for i := 0; i < SeatCount; i++ {
		if err := t.deck.RemoveAll(holeCards[i]); err != nil {
			return nil, err
		}

		s := newSeat(i, stacks[i], holeCards[i])
		t.seats[i] = s
		t.potManager.SeatParticipant(s)

		if s.stack == 0 {
			s.folded = true
			if err := t.potManager.Fold(s); err != nil {
				return nil, err
			}
		}
	}

	if t.liveCount() < 2 {
		return nil, handerr.New(handerr.ValidationError, "at least two seats need chips to play a hand")
	}

	if err := t.postBlind(t.seats[positions.SmallBlind], opts.SmallBlind); err != nil {
		return nil, err
	}

	if err := t.postBlind(t.seats[positions.BigBlind], opts.BigBlind); err != nil {
		return nil, err
	}

	t.currentBet = max(t.seats[positions.SmallBlind].streetContribution, t.seats[positions.BigBlind].streetContribution)
	t.minRaise = opts.BigBlind
	t.advance(positions.BigBlind)

	return t, nil
}

func validate(stacks []int, holeCards []deck.Hand, positions Positions, opts Options) error {
	if len(stacks) != SeatCount {
		return handerr.New(handerr.ValidationError, "expected %d stacks, got %d", SeatCount, len(stacks))
	}

	if len(holeCards) != SeatCount {
		return handerr.New(handerr.ValidationError, "expected %d sets of hole cards, got %d", SeatCount, len(holeCards))
	}

	for i, stack := range stacks {
		if stack < 0 {
			return handerr.New(handerr.ValidationError, "stack for seat %d cannot be negative", i)
		}

		if stack > MaxStack {
			return handerr.New(handerr.ValidationError, "stack for seat %d cannot be more than %d", i, MaxStack)
		}

		if len(holeCards[i]) != 2 {
			return handerr.New(handerr.ValidationError, "seat %d must have exactly 2 hole cards", i)
		}
	}

	for _, pos := range []struct {
		name  string
		index int
	}{
		{"button", positions.Button},
		{"small blind", positions.SmallBlind},
		{"big blind", positions.BigBlind},
	} {
		if pos.index < 0 || pos.index >= SeatCount {
			return handerr.New(handerr.ValidationError, "%s position must be between 0 and %d", pos.name, SeatCount-1)
		}
	}

	if positions.SmallBlind == positions.BigBlind {
		return handerr.New(handerr.ValidationError, "small blind and big blind must be different seats")
	}

	if opts.SmallBlind <= 0 || opts.BigBlind < opts.SmallBlind {
		return handerr.New(handerr.ValidationError, "invalid blinds %d/%d", opts.SmallBlind, opts.BigBlind)
	}

	return nil
}

func (t *Table) postBlind(s *Seat, blind int) error {
	if s.folded {
		return nil
	}

	if err := t.contribute(s, blind); err != nil {
		return err
	}

	t.logger.WithFields(logrus.Fields{
		"seat":   s.index,
		"street": t.street.String(),
	}).Debugf("posted a blind of ${%d}", s.streetContribution)

	return nil
}

// Apply validates a command against the state of the table and applies it
// An illegal command returns a RuleViolation and leaves the table untouched.
func (t *Table) Apply(cmd action.Command) error {
	if t.IsHandOver() {
		return handerr.New(handerr.RuleViolation, "cannot apply %q: the hand is over", cmd.String())
	}

	if deal, ok := cmd.(action.DealStreet); ok {
		return t.dealStreet(deal)
	}

	if t.actor == noActor {
		next, _ := t.street.nextDeal()
		return handerr.New(handerr.RuleViolation, "cannot apply %q: betting on the %s is closed, waiting for the %s", cmd.String(), t.street, next.Name())
	}

	s := t.seats[t.actor]
	var err error
	switch c := cmd.(type) {
	case action.Fold:
		err = t.fold(s)
	case action.CheckOrCall:
		err = t.checkOrCall(s)
	case action.BetOrRaiseTo:
		err = t.betOrRaiseTo(s, c.Amount, c)
	case action.AllIn:
		err = t.allIn(s, c)
	default:
		err = handerr.New(handerr.MalformedAction, "unsupported command %q", cmd.String())
	}

	if err != nil {
		return err
	}

	t.logger.WithFields(logrus.Fields{
		"seat":   s.index,
		"street": t.street.String(),
		"action": cmd.String(),
	}).Debug(cmd.LogMessage())

	if t.liveCount() == 1 {
		t.uncontested = true
		t.actor = noActor
		return nil
	}

	t.advance(s.index)
	return nil
}

func (t *Table) fold(s *Seat) error {
	if err := t.potManager.Fold(s); err != nil {
		return err
	}

	s.folded = true
	s.hasActed = true
	return nil
}

func (t *Table) checkOrCall(s *Seat) error {
	if toCall := t.currentBet - s.streetContribution; toCall > 0 {
		if err := t.contribute(s, toCall); err != nil {
			return err
		}
	}

	s.hasActed = true
	return nil
}

func (t *Table) betOrRaiseTo(s *Seat, amount int, cmd action.Command) error {
	if amount <= t.currentBet {
		return t.ruleViolation(s, cmd, "amount must be greater than the current bet of ${%d}", t.currentBet)
	}

	allInAmount := s.stack + s.streetContribution
	if amount > allInAmount {
		return t.ruleViolation(s, cmd, "seat only has ${%d}", allInAmount)
	}

	if s.raiseCapped {
		return t.ruleViolation(s, cmd, "betting was not reopened, seat may only call or fold")
	}

	increment := amount - t.currentBet
	isFullRaise := increment >= t.minRaise
	if !isFullRaise && amount != allInAmount {
		return t.ruleViolation(s, cmd, "raise must be at least ${%d} more than the current bet of ${%d}", t.minRaise, t.currentBet)
	}

	if err := t.contribute(s, amount-s.streetContribution); err != nil {
		return err
	}

	for _, other := range t.seats {
		if other == s || !other.canAct() {
			continue
		}

		if isFullRaise {
			other.hasActed = false
			other.raiseCapped = false
		} else if other.hasActed {
			other.raiseCapped = true
		}
	}

	if isFullRaise {
		t.minRaise = increment
	}

	t.currentBet = amount
	s.hasActed = true
	return nil
}

func (t *Table) allIn(s *Seat, cmd action.Command) error {
	if s.stack == 0 {
		return t.ruleViolation(s, cmd, "seat has no chips")
	}

	if amount := s.stack + s.streetContribution; amount > t.currentBet {
		// an all-in is never rejected for being too small, and it may always complete a call
		raiseCapped := s.raiseCapped
		s.raiseCapped = false
		if err := t.betOrRaiseTo(s, amount, cmd); err != nil {
			s.raiseCapped = raiseCapped
			return err
		}

		return nil
	}

	return t.checkOrCall(s)
}

func (t *Table) dealStreet(deal action.DealStreet) error {
	next, ok := t.street.nextDeal()
	if !ok || t.actor != noActor {
		return handerr.New(handerr.RuleViolation, "cannot deal the %s during the %s: betting is not closed", deal.Street.Name(), t.street)
	}

	if deal.Street != next {
		return handerr.New(handerr.RuleViolation, "cannot deal the %s: waiting for the %s", deal.Street.Name(), next.Name())
	}

	if len(deal.Cards) != next.CardCount() {
		return handerr.New(handerr.InvalidBoardLength, "the %s needs %d cards, got %d", next.Name(), next.CardCount(), len(deal.Cards))
	}

	if err := t.deck.RemoveAll(deal.Cards); err != nil {
		return err
	}

	t.board = append(t.board, deal.Cards...)
	t.street++

	t.logger.WithField("street", t.street.String()).Debug(deal.LogMessage())

	for _, s := range t.seats {
		s.newStreet()
	}

	t.currentBet = 0
	t.minRaise = t.options.BigBlind
	t.advance(t.positions.Button)

	return nil
}

// advance puts the next seat that needs to act on the clock, starting left of from
// When nobody needs to act the street is closed; a closed river goes to showdown.
func (t *Table) advance(from int) {
	t.actor = noActor
	for i := 1; i <= SeatCount; i++ {
		idx := (from + i) % SeatCount
		if t.needsToAct(t.seats[idx]) {
			t.actor = idx
			return
		}
	}

	if t.street == River {
		t.street = Showdown
		t.logger.Debug("betting is closed, going to showdown")
	}
}

// needsToAct is true when the seat owes chips, or has not acted since the last full raise
// and someone else could still respond to it
func (t *Table) needsToAct(s *Seat) bool {
	if !s.canAct() {
		return false
	}

	if s.streetContribution < t.currentBet {
		return true
	}

	if s.hasActed {
		return false
	}

	for _, other := range t.seats {
		if other != s && other.canAct() {
			return true
		}
	}

	return false
}

func (t *Table) contribute(s *Seat, amount int) error {
	moved, err := t.potManager.Contribute(s, amount)
	if err != nil {
		return err
	}

	s.streetContribution += moved
	s.totalContribution += moved
	if s.stack == 0 {
		s.allIn = true
	}

	return nil
}

func (t *Table) liveCount() int {
	count := 0
	for _, s := range t.seats {
		if !s.folded {
			count++
		}
	}

	return count
}

func (t *Table) ruleViolation(s *Seat, cmd action.Command, format string, a ...interface{}) error {
	return handerr.New(handerr.RuleViolation, "seat %d cannot %q on the %s: %s", s.index, cmd.String(), t.street, fmt.Sprintf(format, a...))
}

// Finish pays the pots to the tiers of winners, strongest first, and completes the hand
// Odd chips go to the winners closest to the left of the button.
func (t *Table) Finish(winners [][]potmanager.Participant) (potmanager.Pots, map[int]int, error) {
	if !t.IsHandOver() {
		return nil, nil, handerr.New(handerr.RuleViolation, "cannot finish the hand during the %s", t.street)
	}

	if t.street == Complete {
		return nil, nil, handerr.New(handerr.RuleViolation, "the hand is already complete")
	}

	pots, payouts, err := t.potManager.PayWinners(winners, (t.positions.Button+1)%SeatCount)
	if err != nil {
		return nil, nil, err
	}

	t.street = Complete
	t.actor = noActor
	return pots, payouts, nil
}

// IsHandOver returns true once the hand reached showdown, or every seat but one folded
func (t *Table) IsHandOver() bool {
	return t.uncontested || !t.street.isBettingRound()
}

// IsUncontested returns true if the hand ended with every seat but one folding
func (t *Table) IsUncontested() bool {
	return t.uncontested
}

// AwaitingDeal returns the street the table is waiting on when betting is closed
func (t *Table) AwaitingDeal() (action.Street, bool) {
	if t.IsHandOver() || t.actor != noActor {
		return "", false
	}

	return t.street.nextDeal()
}

// Actor returns the seat on the clock
func (t *Table) Actor() (*Seat, bool) {
	if t.actor == noActor {
		return nil, false
	}

	return t.seats[t.actor], true
}

// Street returns the current street
func (t *Table) Street() Street {
	return t.street
}

// Board returns the community cards
func (t *Table) Board() deck.Hand {
	return t.board.Clone()
}

// Seats returns the seats in table order
func (t *Table) Seats() []*Seat {
	return append([]*Seat(nil), t.seats...)
}

// LiveSeats returns the seats that have not folded, in table order
func (t *Table) LiveSeats() []*Seat {
	live := make([]*Seat, 0, SeatCount)
	for _, s := range t.seats {
		if !s.folded {
			live = append(live, s)
		}
	}

	return live
}

// Positions returns the button and blind seats
func (t *Table) Positions() Positions {
	return t.positions
}

// CurrentBet returns the street contribution every seat has to match
func (t *Table) CurrentBet() int {
	return t.currentBet
}

// MinRaise returns the smallest legal raise increment
func (t *Table) MinRaise() int {
	return t.minRaise
}

// Pots returns the main pot and side pots built so far
func (t *Table) Pots() potmanager.Pots {
	return t.potManager.Pots()
}

// ChipCount returns the chips behind plus the chips in the pots
// It never changes over the course of a hand
func (t *Table) ChipCount() int {
	total := t.potManager.Total()
	for _, s := range t.seats {
		total += s.stack
	}

	return total
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}
