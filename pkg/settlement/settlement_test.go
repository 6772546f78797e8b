package settlement

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"handsettle-server/pkg/handerr"
	"handsettle-server/pkg/poker/handanalyzer"
	"handsettle-server/pkg/poker/texasholdem"
)

func newRequest(actions, board string) Request {
	return Request{
		Stacks:             []int{1000, 1000, 1000, 1000, 1000, 1000},
		DealerPosition:     0,
		SmallBlindPosition: 1,
		BigBlindPosition:   2,
		HoleCards:          []string{"2h3h", "4h5h", "QsQd", "AsAd", "KsKd", "6s6d"},
		Actions:            actions,
		BoardCards:         board,
	}
}

func settle(t *testing.T, req Request) *Result {
	t.Helper()

	result, err := Settle(logrus.StandardLogger(), req)
	require.NoError(t, err)
	assertInvariants(t, req, result)

	return result
}

// assertInvariants checks that no chips were created or destroyed, and that nobody lost more than they had
func assertInvariants(t *testing.T, req Request, result *Result) {
	t.Helper()

	sum := 0
	for i, payoff := range result.Payoffs {
		sum += payoff
		assert.GreaterOrEqual(t, payoff, -req.Stacks[i], "seat %d", i)
		assert.Equal(t, req.Stacks[i]+payoff, result.FinalStacks[i], "seat %d", i)
	}

	assert.Equal(t, 0, sum)
}

func assertKind(t *testing.T, req Request, kind handerr.Kind) error {
	t.Helper()

	result, err := Settle(logrus.StandardLogger(), req)
	assert.Nil(t, result)
	assert.Equal(t, kind, handerr.KindOf(err), "%v", err)

	return err
}

func TestSettle_foldAround(t *testing.T) {
	a := assert.New(t)

	result := settle(t, newRequest("f,f,f,f,f", ""))
	a.Equal([]int{0, -20, 20, 0, 0, 0}, result.Payoffs)
	a.True(result.Uncontested)
	a.Empty(result.Showdown)
	a.Len(result.Pots, 1)
	a.Equal(60, result.Pots[0].Amount)
	a.Equal([]int{2}, result.Pots[0].WinnerIDs())
}

func TestSettle_foldToRaise(t *testing.T) {
	result := settle(t, newRequest("r120,f,f,f,f,f", ""))
	assert.Equal(t, []int{0, -20, -40, 60, 0, 0}, result.Payoffs)
}

func TestSettle_twoAllInsUnequalDepth(t *testing.T) {
	a := assert.New(t)

	req := newRequest("allin,allin,f,f,f,c", "7c7h9dJcTs")
	req.Stacks = []int{1000, 1000, 1000, 300, 600, 1000}

	result := settle(t, req)
	a.Len(result.Pots, 2)

	main, side := result.Pots[0], result.Pots[1]
	a.Equal(920, main.Amount)
	a.Equal([]int{2, 3, 4}, main.EligibleIDs())
	a.Equal([]int{3}, main.WinnerIDs())
	a.Equal(600, side.Amount)
	a.Equal([]int{2, 4}, side.EligibleIDs())
	a.Equal([]int{4}, side.WinnerIDs())
	a.Equal(20+600+300+600, main.Amount+side.Amount)

	a.Equal([]int{0, -20, -600, 620, 0, 0}, result.Payoffs)
	a.Equal("7c7h9dJcTs", result.Board)
	a.False(result.Uncontested)
	a.Len(result.Showdown, 3)

	winner := result.Showdown[1]
	a.Equal(3, winner.Seat)
	a.Equal(handanalyzer.TwoPair, winner.Hand)
	a.Equal("Two pair, aces and 7s", winner.Description)
	a.Equal(920, winner.Winnings)
}

func TestSettle_splitPotOddChip(t *testing.T) {
	a := assert.New(t)

	req := newRequest("c,r81,f,f,f,c,c,x,x,x,x,x,x,x,x,x", "KhKc7s7d2c")
	req.HoleCards = []string{"2h3h", "4h5h", "AhJc", "AdJd", "9h8h", "6s6d"}

	result := settle(t, req)
	a.Len(result.Pots, 1)
	a.Equal(263, result.Pots[0].Amount)

	// seat 2 is closest to the left of the button and gets the odd chip
	a.Equal([]int{2, 3}, result.Pots[0].WinnerIDs())
	a.Equal([]int{0, -20, 51, 50, -81, 0}, result.Payoffs)

	a.Equal(handanalyzer.TwoPair, result.Showdown[0].Hand)
	a.Equal("Two pair, kings and 7s", result.Showdown[0].Description)
	a.Equal(132, result.Showdown[0].Winnings)
	a.Equal(131, result.Showdown[1].Winnings)
	a.Equal(0, result.Showdown[2].Winnings)
}

func TestSettle_oddChipFollowsButton(t *testing.T) {
	req := newRequest("c,r81,f,f,f,c,c,x,x,x,x,x,x,x,x,x", "KhKc7s7d2c")
	req.HoleCards = []string{"2h3h", "4h5h", "AhJc", "AdJd", "9h8h", "6s6d"}
	req.DealerPosition = 2

	result := settle(t, req)
	assert.Equal(t, []int{3, 2}, result.Pots[0].WinnerIDs())
	assert.Equal(t, []int{0, -20, 50, 51, -81, 0}, result.Payoffs)
}

func TestSettle_showdownWithSidePotWonByShortStack(t *testing.T) {
	a := assert.New(t)

	// the short stack has the best hand, the covering stacks fight over the side pot
	req := newRequest("allin,r400,f,f,f,c,b200,c,x,x,x,x", "7c7h9dJcTs")
	req.Stacks = []int{1000, 1000, 1000, 200, 1000, 1000}

	result := settle(t, req)
	a.Len(result.Pots, 2)
	a.Equal(20+200*3, result.Pots[0].Amount)
	a.Equal([]int{3}, result.Pots[0].WinnerIDs())
	a.Equal(200*2+200*2, result.Pots[1].Amount)
	a.Equal([]int{4}, result.Pots[1].WinnerIDs())
	a.Equal([]int{0, -20, -600, 420, 200, 0}, result.Payoffs)
}

func TestSettle_determinism(t *testing.T) {
	req := newRequest("c,r81,f,f,f,c,c,x,x,x,x,x,x,x,x,x", "KhKc7s7d2c")
	req.HoleCards = []string{"2h3h", "4h5h", "AhJc", "AdJd", "9h8h", "6s6d"}

	first := settle(t, req)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, settle(t, req))
	}
}

func TestSettle_inlineStreetMarkers(t *testing.T) {
	a := assert.New(t)

	req := newRequest("c,c,c,c,c,x,FLOP:7c7h9d,x,x,x,x,x,x,TURN:Jc,x,x,x,x,x,x,RIVER:Ts,x,x,x,x,x,x", "")
	result := settle(t, req)
	a.Equal("7c7h9dJcTs", result.Board)

	// aces win a six way pot of 240
	a.Equal([]int{-40, -40, -40, 200, -40, -40}, result.Payoffs)
}

func TestSettle_boardStringOverridesInlineMarkers(t *testing.T) {
	a := assert.New(t)

	// the inline flop would give seat 4 a set, the board string does not
	req := newRequest("c,c,c,c,c,x,FLOP:Kh8h8c,x,x,x,x,x,x,TURN:2d,x,x,x,x,x,x,RIVER:3d,x,x,x,x,x,x", "7c7h9dJcTs")
	result := settle(t, req)
	a.Equal("7c7h9dJcTs", result.Board)
	a.Equal([]int{-40, -40, -40, 200, -40, -40}, result.Payoffs)
}

func TestSettle_runoutFromBoardString(t *testing.T) {
	a := assert.New(t)

	req := newRequest("allin,f,f,f,f,c", "7c7h9dJcTs")
	result := settle(t, req)
	a.Equal([]int{0, -20, -1000, 1020, 0, 0}, result.Payoffs)
	a.Equal(2020, result.Pots.Total())
}

func TestSettle_boardAfterFoldAround(t *testing.T) {
	a := assert.New(t)

	// unused board string cards are ignored
	result := settle(t, newRequest("f,f,f,f,f", "7c7h9dJcTs"))
	a.Equal("", result.Board)
	a.True(result.Uncontested)
	a.Equal([]int{0, -20, 20, 0, 0, 0}, result.Payoffs)

	// an inline deal is an action, and nothing may follow the end of the hand
	err := assertKind(t, newRequest("f,f,f,f,f,FLOP:7c7h9d", ""), handerr.RuleViolation)
	a.EqualError(err, `action 6 ("FLOP:7c7h9d") comes after the hand is over`)

	// inline markers are dropped when a board string is given, so the same actions settle
	result = settle(t, newRequest("f,f,f,f,f,FLOP:7c7h9d", "7c7h9dJcTs"))
	a.Equal([]int{0, -20, 20, 0, 0, 0}, result.Payoffs)
}

func TestSettle_ruleViolations(t *testing.T) {
	tests := []struct {
		name    string
		actions string
		board   string
		err     string
	}{
		{"incomplete preflop", "c,c", "", "hand is incomplete: seat 5 still has to act on the preflop"},
		{"missing flop", "c,c,c,c,c,x", "", "hand is incomplete: the flop was never dealt"},
		{"missing turn", "c,c,c,c,c,x,x,x,x,x,x,x", "2c7h8d", "hand is incomplete: the turn was never dealt"},
		{"action after fold around", "f,f,f,f,f,c", "", `action 6 ("c") comes after the hand is over`},
		{"raise below the minimum", "r60", "", `seat 3 cannot "r60" on the preflop: raise must be at least ${40} more than the current bet of ${40}`},
		{"raise beyond stack", "r1200", "", `seat 3 cannot "r1200" on the preflop: seat only has ${1000}`},
		{"action while waiting for a deal", "c,c,c,c,c,x,x", "", `cannot apply "x": betting on the preflop is closed, waiting for the flop`},
		{"deal too early", "c,FLOP:2c7h8d", "", "cannot deal the flop during the preflop: betting is not closed"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := assertKind(t, newRequest(test.actions, test.board), handerr.RuleViolation)
			assert.EqualError(t, err, test.err)
		})
	}
}

func TestSettle_parseErrors(t *testing.T) {
	req := newRequest("f,f,f,f,f", "")
	req.HoleCards[2] = "AsK"
	err := assertKind(t, req, handerr.InvalidCardFormat)
	assert.EqualError(t, err, `hole cards for seat 2 must be 2 cards, i.e., AsKd: got "AsK"`)

	req = newRequest("f,f,f,f,f", "")
	req.HoleCards[2] = "AsKx"
	assertKind(t, req, handerr.InvalidCardFormat)

	assertKind(t, newRequest("f,fold", ""), handerr.MalformedAction)
	assertKind(t, newRequest("b0", ""), handerr.InvalidAmount)
	assertKind(t, newRequest("f,f,f,f,f", "2c7h8"), handerr.InvalidBoardLength)
	assertKind(t, newRequest("f,f,f,f,f", "2c7h"), handerr.InvalidBoardLength)
	assertKind(t, newRequest("f,f,f,f,f", "2c7h8x"), handerr.InvalidCardFormat)
}

func TestSettle_duplicateCards(t *testing.T) {
	err := assertKind(t, newRequest("f,f,f,f,f", "AsKh2c"), handerr.DuplicateCard)
	assert.EqualError(t, err, "card As appears more than once")

	req := newRequest("f,f,f,f,f", "")
	req.HoleCards[5] = "QsJc"
	assertKind(t, req, handerr.DuplicateCard)

	// inline deals are checked even though the hand never reaches them
	assertKind(t, newRequest("c,c,c,c,c,x,FLOP:2c2c8d", ""), handerr.DuplicateCard)
}

func TestSettle_validation(t *testing.T) {
	req := newRequest("f,f,f,f,f", "")
	req.Stacks = req.Stacks[:5]
	err := assertKind(t, req, handerr.ValidationError)
	assert.EqualError(t, err, "expected 6 stacks, got 5")

	req = newRequest("f,f,f,f,f", "")
	req.HoleCards = append(req.HoleCards, "7c7d")
	assertKind(t, req, handerr.ValidationError)

	req = newRequest("f,f,f,f,f", "")
	req.Stacks[3] = -5
	assertKind(t, req, handerr.ValidationError)

	req = newRequest("f,f,f,f,f", "")
	req.DealerPosition = 6
	err = assertKind(t, req, handerr.ValidationError)
	assert.EqualError(t, err, "dealer position must be between 0 and 5")

	req = newRequest("f,f,f,f,f", "")
	req.BigBlindPosition = 1
	assertKind(t, req, handerr.ValidationError)

	// shapes are checked before cards
	req = newRequest("f,f,f,f,f", "")
	req.Stacks = req.Stacks[:5]
	req.HoleCards[0] = "AsK"
	assertKind(t, req, handerr.ValidationError)
}

func TestSettle_stacksThatWouldOverflow(t *testing.T) {
	req := newRequest("allin,c,c,f,f,f", "7c7h9dJcTs")
	req.Stacks = []int{1000, 1000, 1000, math.MaxInt / 3, math.MaxInt / 3, math.MaxInt / 3}

	err := assertKind(t, req, handerr.ValidationError)
	assert.EqualError(t, err, fmt.Sprintf("stack for seat 3 cannot be more than %d", texasholdem.MaxStack))
}

func TestSettle_maximumStacks(t *testing.T) {
	a := assert.New(t)

	req := newRequest("allin,c,c,c,c,c", "7c7h9dJcTs")
	for i := range req.Stacks {
		req.Stacks[i] = texasholdem.MaxStack
	}

	result := settle(t, req)
	a.Equal(texasholdem.MaxStack*6, result.Pots.Total())
	a.Equal(texasholdem.MaxStack*6, result.FinalStacks[3])
	for i, payoff := range result.Payoffs {
		if i == 3 {
			a.Equal(texasholdem.MaxStack*5, payoff)
		} else {
			a.Equal(-texasholdem.MaxStack, payoff, "seat %d", i)
		}
	}
}

func TestSettle_sittingOutSeat(t *testing.T) {
	req := newRequest("f,f,f,f", "")
	req.Stacks = []int{1000, 1000, 1000, 0, 1000, 1000}

	result := settle(t, req)
	assert.Equal(t, []int{0, -20, 20, 0, 0, 0}, result.Payoffs)
}

func TestResult_MarshalJSON(t *testing.T) {
	result := settle(t, newRequest("f,f,f,f,f", ""))

	b, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"payoffs": [0, -20, 20, 0, 0, 0],
		"final_stacks": [1000, 980, 1020, 1000, 1000, 1000],
		"board": "",
		"uncontested": true,
		"pots": [{"amount": 60, "eligible": [2], "winners": [2]}]
	}`, string(b))
}
