package texasholdem

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"handsettle-server/pkg/deck"
	"handsettle-server/pkg/handerr"
	"handsettle-server/pkg/poker/action"
)

var testHoleCards = []string{"AsAd", "KsKd", "QsQd", "JsJd", "TsTd", "9s9d"}

func holeCards() []deck.Hand {
	hands := make([]deck.Hand, len(testHoleCards))
	for i, cards := range testHoleCards {
		hands[i] = deck.MustParseCards(cards)
	}

	return hands
}

// setupTable seats six players with the button on seat 0 and the blinds on seats 1 and 2
func setupTable(t *testing.T, stacks ...int) *Table {
	t.Helper()

	if len(stacks) == 0 {
		stacks = []int{1000, 1000, 1000, 1000, 1000, 1000}
	}

	table, err := NewTable(logrus.StandardLogger(), stacks, holeCards(), Positions{Button: 0, SmallBlind: 1, BigBlind: 2}, DefaultOptions())
	require.NoError(t, err)

	return table
}

func assertActor(t *testing.T, table *Table, seat int, msgAndArgs ...interface{}) {
	t.Helper()

	s, ok := table.Actor()
	if assert.True(t, ok, msgAndArgs...) {
		assert.Equal(t, seat, s.Index(), msgAndArgs...)
	}
}

func assertApply(t *testing.T, table *Table, tokens ...string) {
	t.Helper()

	for _, token := range tokens {
		cmd, err := action.ParseToken(token)
		require.NoError(t, err, token)
		require.NoError(t, table.Apply(cmd), token)
	}
}

func assertApplyFailed(t *testing.T, table *Table, token string, kind handerr.Kind, expectedErr string) {
	t.Helper()

	cmd, err := action.ParseToken(token)
	require.NoError(t, err, token)

	err = table.Apply(cmd)
	assert.Equal(t, kind, handerr.KindOf(err), token)
	if expectedErr != "" {
		assert.EqualError(t, err, expectedErr, token)
	}
}
