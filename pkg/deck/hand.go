package deck

import (
	"strings"
)

// Hand represents a collection of cards
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// Codes returns the concatenated two character codes of the hand, i.e., "AsKd"
func (h Hand) Codes() string {
	var sb strings.Builder
	for _, c := range h {
		sb.WriteString(c.Code())
	}

	return sb.String()
}

func (h Hand) String() string {
	c := make([]string, len(h))
	for i, card := range h {
		c[i] = card.String()
	}

	return strings.Join(c, " ")
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
