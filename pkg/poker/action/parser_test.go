package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"handsettle-server/pkg/deck"
	"handsettle-server/pkg/handerr"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		token string
		want  Command
	}{
		{"f", Fold{}},
		{"x", CheckOrCall{}},
		{"c", CheckOrCall{IsCall: true}},
		{"b80", BetOrRaiseTo{Amount: 80}},
		{"r120", BetOrRaiseTo{Amount: 120, IsRaise: true}},
		{"allin", AllIn{}},
		{"a995", AllIn{Amount: 995}},
		{"FLOP:AsKd2c", DealStreet{Street: Flop, Cards: deck.MustParseCards("AsKd2c")}},
		{"TURN:Th", DealStreet{Street: Turn, Cards: deck.MustParseCards("Th")}},
		{"RIVER:9c", DealStreet{Street: River, Cards: deck.MustParseCards("9c")}},
	}

	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			cmd, err := ParseToken(test.token)
			assert.NoError(t, err)
			assert.Equal(t, test.want, cmd)
			assert.Equal(t, test.token, cmd.String())
		})
	}
}

func TestParseToken_errors(t *testing.T) {
	tests := []struct {
		token string
		kind  handerr.Kind
	}{
		{"F", handerr.MalformedAction},
		{"fold", handerr.MalformedAction},
		{"b", handerr.MalformedAction},
		{"q100", handerr.MalformedAction},
		{"ALLIN", handerr.MalformedAction},
		{"PREFLOP:AsKd2c", handerr.MalformedAction},
		{"flop:AsKd2c", handerr.MalformedAction},
		{"b0", handerr.InvalidAmount},
		{"r-40", handerr.InvalidAmount},
		{"bten", handerr.InvalidAmount},
		{"r+40", handerr.InvalidAmount},
		{"a0", handerr.InvalidAmount},
		{"b99999999999999999999999", handerr.InvalidAmount},
		{"FLOP:AsKd", handerr.InvalidBoardLength},
		{"TURN:AsK", handerr.InvalidBoardLength},
		{"RIVER:", handerr.InvalidBoardLength},
		{"FLOP:AsKdZz", handerr.InvalidCardFormat},
	}

	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			_, err := ParseToken(test.token)
			assert.Error(t, err)
			assert.Equal(t, test.kind, handerr.KindOf(err))
		})
	}
}

func TestParseActions(t *testing.T) {
	a := assert.New(t)

	cmds, err := ParseActions(" r100 , c,, x ,f")
	a.NoError(err)
	a.Equal([]Command{
		BetOrRaiseTo{Amount: 100, IsRaise: true},
		CheckOrCall{IsCall: true},
		CheckOrCall{},
		Fold{},
	}, cmds)

	cmds, err = ParseActions("")
	a.NoError(err)
	a.Len(cmds, 0)

	_, err = ParseActions("c,c,zz")
	a.EqualError(err, `unknown action "zz"`)
}

func TestParseBoard(t *testing.T) {
	a := assert.New(t)

	deals, err := ParseBoard("AsKd2cThJh")
	a.NoError(err)
	a.Equal([]DealStreet{
		{Street: Flop, Cards: deck.MustParseCards("AsKd2c")},
		{Street: Turn, Cards: deck.MustParseCards("Th")},
		{Street: River, Cards: deck.MustParseCards("Jh")},
	}, deals)

	deals, err = ParseBoard("AsKd2cTh")
	a.NoError(err)
	a.Len(deals, 2)

	deals, err = ParseBoard("AsKd2c")
	a.NoError(err)
	a.Len(deals, 1)

	deals, err = ParseBoard("  ")
	a.NoError(err)
	a.Nil(deals)

	for _, board := range []string{"AsK", "AsKd", "AsKd2cThJh9", "AsKd2cThJh9c"} {
		_, err = ParseBoard(board)
		a.Equal(handerr.InvalidBoardLength, handerr.KindOf(err), board)
	}

	_, err = ParseBoard("AsKd1c")
	a.Equal(handerr.InvalidCardFormat, handerr.KindOf(err))
}

func TestParse_inlineMarkersWithoutBoard(t *testing.T) {
	a := assert.New(t)

	script, err := Parse("c,x,FLOP:AsKd2c,x,x", "")
	a.NoError(err)
	a.Nil(script.Board)
	a.Equal([]Command{
		CheckOrCall{IsCall: true},
		CheckOrCall{},
		DealStreet{Street: Flop, Cards: deck.MustParseCards("AsKd2c")},
		CheckOrCall{},
		CheckOrCall{},
	}, script.Commands)
}

func TestParse_boardStringWins(t *testing.T) {
	a := assert.New(t)

	script, err := Parse("c,x,FLOP:AsKd2c,x,x", "7h8h9hTcJc")
	a.NoError(err)
	a.Equal([]Command{
		CheckOrCall{IsCall: true},
		CheckOrCall{},
		CheckOrCall{},
		CheckOrCall{},
	}, script.Commands)
	a.Len(script.Board, 3)
	a.Equal("7h8h9h", script.Board[0].Cards.Codes())

	// inline markers are still validated
	_, err = Parse("c,x,FLOP:AsKd,x,x", "7h8h9hTcJc")
	a.Equal(handerr.InvalidBoardLength, handerr.KindOf(err))

	_, err = Parse("c,x", "7h8h9hTcJ")
	a.Equal(handerr.InvalidBoardLength, handerr.KindOf(err))
}

func TestCommand_LogMessage(t *testing.T) {
	a := assert.New(t)
	a.Equal("folded", Fold{}.LogMessage())
	a.Equal("checked", CheckOrCall{}.LogMessage())
	a.Equal("called", CheckOrCall{IsCall: true}.LogMessage())
	a.Equal("bet ${80}", BetOrRaiseTo{Amount: 80}.LogMessage())
	a.Equal("raised to ${200}", BetOrRaiseTo{Amount: 200, IsRaise: true}.LogMessage())
	a.Equal("went all-in", AllIn{Amount: 10}.LogMessage())
	a.Equal("dealt the turn: 10♥", DealStreet{Street: Turn, Cards: deck.MustParseCards("Th")}.LogMessage())
	a.Equal(3, Flop.CardCount())
	a.Equal(1, River.CardCount())
}
