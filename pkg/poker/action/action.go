package action

import (
	"fmt"
	"strconv"

	"handsettle-server/pkg/deck"
)

// Command is a single parsed action
// The set of commands is closed: Fold, CheckOrCall, BetOrRaiseTo, AllIn and DealStreet
type Command interface {
	// String returns the notation the command was parsed from
	String() string
	// LogMessage returns a message formatted for the log
	LogMessage() string

	isCommand()
}

// Fold gives up the hand
type Fold struct{}

// CheckOrCall checks when nothing is owed, otherwise calls
// IsCall records which token was used and is only informational
type CheckOrCall struct {
	IsCall bool
}

// BetOrRaiseTo bets or raises so the seat's contribution for the street becomes Amount
type BetOrRaiseTo struct {
	Amount  int
	IsRaise bool
}

// AllIn commits the rest of the seat's stack
// Amount is only informational, the real amount comes from the stack
type AllIn struct {
	Amount int
}

// DealStreet deals the board cards for a street
type DealStreet struct {
	Street Street
	Cards  deck.Hand
}

func (Fold) isCommand()         {}
func (CheckOrCall) isCommand()  {}
func (BetOrRaiseTo) isCommand() {}
func (AllIn) isCommand()        {}
func (DealStreet) isCommand()   {}

func (Fold) String() string {
	return "f"
}

func (c CheckOrCall) String() string {
	if c.IsCall {
		return "c"
	}

	return "x"
}

func (b BetOrRaiseTo) String() string {
	if b.IsRaise {
		return "r" + strconv.Itoa(b.Amount)
	}

	return "b" + strconv.Itoa(b.Amount)
}

func (a AllIn) String() string {
	if a.Amount > 0 {
		return "a" + strconv.Itoa(a.Amount)
	}

	return "allin"
}

func (d DealStreet) String() string {
	return string(d.Street) + ":" + d.Cards.Codes()
}

// LogMessage returns a message formatted for the log
func (Fold) LogMessage() string {
	return "folded"
}

// LogMessage returns a message formatted for the log
func (c CheckOrCall) LogMessage() string {
	if c.IsCall {
		return "called"
	}

	return "checked"
}

// LogMessage returns a message formatted for the log
func (b BetOrRaiseTo) LogMessage() string {
	if b.IsRaise {
		return fmt.Sprintf("raised to ${%d}", b.Amount)
	}

	return fmt.Sprintf("bet ${%d}", b.Amount)
}

// LogMessage returns a message formatted for the log
func (AllIn) LogMessage() string {
	return "went all-in"
}

// LogMessage returns a message formatted for the log
func (d DealStreet) LogMessage() string {
	return fmt.Sprintf("dealt the %s: %s", d.Street.Name(), d.Cards.String())
}
