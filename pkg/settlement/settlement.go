package settlement

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"handsettle-server/pkg/deck"
	"handsettle-server/pkg/handerr"
	"handsettle-server/pkg/poker/action"
	"handsettle-server/pkg/poker/handanalyzer"
	"handsettle-server/pkg/poker/potmanager"
	"handsettle-server/pkg/poker/texasholdem"
)

// Request describes one hand to settle
type Request struct {
	Stacks             []int    `json:"stacks"`
	DealerPosition     int      `json:"dealer_position"`
	SmallBlindPosition int      `json:"small_blind_position"`
	BigBlindPosition   int      `json:"big_blind_position"`
	HoleCards          []string `json:"hole_cards"`
	Actions            string   `json:"actions"`
	BoardCards         string   `json:"board_cards"`
}

// Result is the outcome of a settled hand
type Result struct {
	// Payoffs are final stack minus starting stack, in seat order
	Payoffs     []int           `json:"payoffs"`
	FinalStacks []int           `json:"final_stacks"`
	Board       string          `json:"board"`
	Uncontested bool            `json:"uncontested"`
	Pots        potmanager.Pots `json:"pots"`
	Showdown    []*ShowdownSeat `json:"showdown,omitempty"`
}

// ShowdownSeat is a seat that was still live at the end of the hand
type ShowdownSeat struct {
	Seat        int               `json:"seat"`
	HoleCards   string            `json:"hole_cards"`
	Hand        handanalyzer.Hand `json:"hand"`
	Description string            `json:"description"`
	BestFive    string            `json:"best_five"`
	Winnings    int               `json:"winnings"`
}

// Settle replays a hand and returns what each seat won or lost
// Nothing is settled when any part of the request is invalid: the first error is returned instead.
func Settle(logger logrus.FieldLogger, req Request) (*Result, error) {
	if err := validateShape(req); err != nil {
		return nil, err
	}

	holeCards, err := parseHoleCards(req.HoleCards)
	if err != nil {
		return nil, err
	}

	script, err := action.Parse(req.Actions, req.BoardCards)
	if err != nil {
		return nil, err
	}

	if err := checkDuplicates(holeCards, script); err != nil {
		return nil, err
	}

	table, err := texasholdem.NewTable(logger, req.Stacks, holeCards, texasholdem.Positions{
		Button:     req.DealerPosition,
		SmallBlind: req.SmallBlindPosition,
		BigBlind:   req.BigBlindPosition,
	}, texasholdem.DefaultOptions())
	if err != nil {
		return nil, err
	}

	startingChips := table.ChipCount()
	if err := replay(table, script); err != nil {
		return nil, err
	}

	result, err := resolve(table)
	if err != nil {
		return nil, err
	}

	if chips := table.ChipCount(); chips != startingChips {
		return nil, fmt.Errorf("chip count changed from %d to %d", startingChips, chips)
	}

	sum := 0
	for _, payoff := range result.Payoffs {
		sum += payoff
	}

	if sum != 0 {
		return nil, fmt.Errorf("payoffs sum to %d", sum)
	}

	logger.WithFields(logrus.Fields{
		"payoffs":     result.Payoffs,
		"uncontested": result.Uncontested,
		"pots":        len(result.Pots),
	}).Debug("settled hand")

	return result, nil
}

func validateShape(req Request) error {
	if len(req.Stacks) != texasholdem.SeatCount {
		return handerr.New(handerr.ValidationError, "expected %d stacks, got %d", texasholdem.SeatCount, len(req.Stacks))
	}

	if len(req.HoleCards) != texasholdem.SeatCount {
		return handerr.New(handerr.ValidationError, "expected %d hole cards, got %d", texasholdem.SeatCount, len(req.HoleCards))
	}

	for i, stack := range req.Stacks {
		if stack < 0 {
			return handerr.New(handerr.ValidationError, "stack for seat %d cannot be negative", i)
		}

		if stack > texasholdem.MaxStack {
			return handerr.New(handerr.ValidationError, "stack for seat %d cannot be more than %d", i, texasholdem.MaxStack)
		}
	}

	for _, pos := range []struct {
		name  string
		index int
	}{
		{"dealer", req.DealerPosition},
		{"small blind", req.SmallBlindPosition},
		{"big blind", req.BigBlindPosition},
	} {
		if pos.index < 0 || pos.index >= texasholdem.SeatCount {
			return handerr.New(handerr.ValidationError, "%s position must be between 0 and %d", pos.name, texasholdem.SeatCount-1)
		}
	}

	if req.SmallBlindPosition == req.BigBlindPosition {
		return handerr.New(handerr.ValidationError, "small blind and big blind must be different seats")
	}

	return nil
}

func parseHoleCards(codes []string) ([]deck.Hand, error) {
	hands := make([]deck.Hand, len(codes))
	for i, code := range codes {
		if len(code) != 4 {
			return nil, handerr.New(handerr.InvalidCardFormat, "hole cards for seat %d must be 2 cards, i.e., AsKd: got %q", i, code)
		}

		cards, err := deck.ParseCards(code)
		if err != nil {
			return nil, err
		}

		hands[i] = cards
	}

	return hands, nil
}

// checkDuplicates takes every known card out of a fresh deck
func checkDuplicates(holeCards []deck.Hand, script *action.Script) error {
	d := deck.New()
	for _, cards := range holeCards {
		if err := d.RemoveAll(cards); err != nil {
			return err
		}
	}

	for _, deal := range script.Board {
		if err := d.RemoveAll(deal.Cards); err != nil {
			return err
		}
	}

	for _, cmd := range script.Commands {
		if deal, ok := cmd.(action.DealStreet); ok {
			if err := d.RemoveAll(deal.Cards); err != nil {
				return err
			}
		}
	}

	return nil
}

// replay feeds every command to the table
// Deals from the board string are made whenever the table is waiting for the next street.
func replay(table *texasholdem.Table, script *action.Script) error {
	board := script.Board
	dealScheduled := func() error {
		for len(board) > 0 {
			next, ok := table.AwaitingDeal()
			if !ok || next != board[0].Street {
				return nil
			}

			if err := table.Apply(board[0]); err != nil {
				return err
			}

			board = board[1:]
		}

		return nil
	}

	for i, cmd := range script.Commands {
		if _, ok := cmd.(action.DealStreet); !ok {
			if err := dealScheduled(); err != nil {
				return err
			}
		}

		if table.IsHandOver() {
			return handerr.New(handerr.RuleViolation, "action %d (%q) comes after the hand is over", i+1, cmd.String())
		}

		if err := table.Apply(cmd); err != nil {
			return err
		}
	}

	if err := dealScheduled(); err != nil {
		return err
	}

	if !table.IsHandOver() {
		if s, ok := table.Actor(); ok {
			return handerr.New(handerr.RuleViolation, "hand is incomplete: seat %d still has to act on the %s", s.Index(), table.Street())
		}

		next, _ := table.AwaitingDeal()
		return handerr.New(handerr.RuleViolation, "hand is incomplete: the %s was never dealt", next.Name())
	}

	return nil
}

// resolve awards the pots and builds the result
func resolve(table *texasholdem.Table) (*Result, error) {
	live := table.LiveSeats()
	board := table.Board()

	var tiers [][]potmanager.Participant
	analyzers := make(map[int]*handanalyzer.HandAnalyzer, len(live))
	if table.IsUncontested() {
		tiers = [][]potmanager.Participant{{live[0]}}
	} else {
		wm := potmanager.NewWinManager()
		for _, s := range live {
			hand := append(s.Cards(), board...)
			ha := handanalyzer.New(hand)
			analyzers[s.Index()] = ha
			wm.AddParticipant(s, ha.GetStrength())
		}

		tiers = wm.GetSortedTiers()
	}

	pots, payouts, err := table.Finish(tiers)
	if err != nil {
		return nil, err
	}

	seats := table.Seats()
	result := &Result{
		Payoffs:     make([]int, len(seats)),
		FinalStacks: make([]int, len(seats)),
		Board:       board.Codes(),
		Uncontested: table.IsUncontested(),
		Pots:        pots,
	}

	for i, s := range seats {
		result.Payoffs[i] = s.Payoff()
		result.FinalStacks[i] = s.Stack()
	}

	for _, s := range live {
		ha, ok := analyzers[s.Index()]
		if !ok {
			continue
		}

		result.Showdown = append(result.Showdown, &ShowdownSeat{
			Seat:        s.Index(),
			HoleCards:   s.Cards().Codes(),
			Hand:        ha.GetHand(),
			Description: ha.Description(),
			BestFive:    ha.BestFive().Codes(),
			Winnings:    payouts[s.Index()],
		})
	}

	return result, nil
}
