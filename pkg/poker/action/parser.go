package action

import (
	"strconv"
	"strings"

	"handsettle-server/pkg/deck"
	"handsettle-server/pkg/handerr"
)

// Script is the parsed form of an action string and a board string
type Script struct {
	// Commands are the player actions, plus any inline deals when no board string was given
	Commands []Command
	// Board holds the deals from the board string, in street order
	// They are dealt whenever the table is waiting for the next street
	Board []DealStreet
}

// Parse parses the action notation and the optional board string
// A non-empty board string takes precedence: inline FLOP/TURN/RIVER markers are still validated, but dropped.
//
// The two sources are not held to the same rule once a hand ends early. An inline marker is an event
// in the action sequence, so a deal after everyone else folded is out of order and is rejected like any
// other action. The board string is the whole board the dealer had set aside, i.e., the five cards from
// a random deal, so the cards of streets that were never reached are simply not used.
func Parse(actions, board string) (*Script, error) {
	commands, err := ParseActions(actions)
	if err != nil {
		return nil, err
	}

	deals, err := ParseBoard(board)
	if err != nil {
		return nil, err
	}

	if len(deals) == 0 {
		return &Script{Commands: commands}, nil
	}

	playerCommands := make([]Command, 0, len(commands))
	for _, cmd := range commands {
		if _, ok := cmd.(DealStreet); ok {
			continue
		}

		playerCommands = append(playerCommands, cmd)
	}

	return &Script{
		Commands: playerCommands,
		Board:    deals,
	}, nil
}

// ParseActions parses a comma separated list of tokens, i.e., "r120,c,FLOP:AsKd2c,x,x"
// Whitespace around tokens is ignored and empty tokens are skipped
func ParseActions(actions string) ([]Command, error) {
	commands := make([]Command, 0)
	for _, token := range strings.Split(actions, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		cmd, err := ParseToken(token)
		if err != nil {
			return nil, err
		}

		commands = append(commands, cmd)
	}

	return commands, nil
}

// ParseToken parses a single action token
func ParseToken(token string) (Command, error) {
	switch token {
	case "f":
		return Fold{}, nil
	case "x":
		return CheckOrCall{}, nil
	case "c":
		return CheckOrCall{IsCall: true}, nil
	case "allin":
		return AllIn{}, nil
	}

	if i := strings.IndexByte(token, ':'); i > 0 {
		return parseDeal(Street(token[:i]), token[i+1:], token)
	}

	if len(token) < 2 {
		return nil, handerr.New(handerr.MalformedAction, "unknown action %q", token)
	}

	switch token[0] {
	case 'b', 'r':
		amount, err := parseAmount(token)
		if err != nil {
			return nil, err
		}

		return BetOrRaiseTo{Amount: amount, IsRaise: token[0] == 'r'}, nil
	case 'a':
		amount, err := parseAmount(token)
		if err != nil {
			return nil, err
		}

		return AllIn{Amount: amount}, nil
	}

	return nil, handerr.New(handerr.MalformedAction, "unknown action %q", token)
}

// ParseBoard splits a board string into flop, turn and river deals
// The board must hold 0, 3, 4 or 5 cards
func ParseBoard(board string) ([]DealStreet, error) {
	board = strings.TrimSpace(board)
	switch len(board) {
	case 0:
		return nil, nil
	case 6, 8, 10:
	default:
		return nil, handerr.New(handerr.InvalidBoardLength, "invalid board %q: expected 3, 4 or 5 cards", board)
	}

	cards, err := deck.ParseCards(board)
	if err != nil {
		return nil, err
	}

	deals := []DealStreet{{Street: Flop, Cards: cards[:3]}}
	if len(cards) >= 4 {
		deals = append(deals, DealStreet{Street: Turn, Cards: cards[3:4]})
	}

	if len(cards) == 5 {
		deals = append(deals, DealStreet{Street: River, Cards: cards[4:5]})
	}

	return deals, nil
}

func parseDeal(street Street, codes, token string) (Command, error) {
	switch street {
	case Flop, Turn, River:
	default:
		return nil, handerr.New(handerr.MalformedAction, "unknown action %q", token)
	}

	if len(codes) != street.CardCount()*2 {
		return nil, handerr.New(handerr.InvalidBoardLength, "invalid %s %q: expected %d cards", street.Name(), codes, street.CardCount())
	}

	cards, err := deck.ParseCards(codes)
	if err != nil {
		return nil, err
	}

	return DealStreet{Street: street, Cards: cards}, nil
}

func parseAmount(token string) (int, error) {
	digits := token[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, handerr.New(handerr.InvalidAmount, "invalid amount in %q", token)
		}
	}

	amount, err := strconv.Atoi(digits)
	if err != nil {
		return 0, handerr.New(handerr.InvalidAmount, "invalid amount in %q", token)
	}

	if amount <= 0 {
		return 0, handerr.New(handerr.InvalidAmount, "amount in %q must be positive", token)
	}

	return amount, nil
}
