package deck

import (
	"fmt"
	"strconv"
	"strings"

	"handsettle-server/pkg/handerr"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Card is an individual playing card
// Cards are values and are never modified after they are parsed
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// face cards
const (
	Ten   = 10
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
)

const rankCodes = "23456789TJQKA"

func (c Card) String() string {
	var rank string
	switch c.Rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♦"
	case Hearts:
		suit = "♥"
	case Spades:
		suit = "♠"
	default:
		suit = "?"
	}

	return rank + suit
}

// Code returns the two character code of the card, i.e., "As" or "Td"
func (c Card) Code() string {
	if c.Rank < 2 || c.Rank > Ace {
		return "??"
	}

	var suit byte
	switch c.Suit {
	case Clubs:
		suit = 'c'
	case Diamonds:
		suit = 'd'
	case Hearts:
		suit = 'h'
	case Spades:
		suit = 's'
	default:
		suit = '?'
	}

	return string([]byte{rankCodes[c.Rank-2], suit})
}

// Equal returns true if the cards are equal (matches suit and rank)
func (c Card) Equal(card Card) bool {
	return c.Suit == card.Suit && c.Rank == card.Rank
}

// ParseCard returns a Card from a two character code
// The rank must be one of 23456789TJQKA and the suit one of hdcs
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, handerr.New(handerr.InvalidCardFormat, "invalid card %q: expected a rank and a suit, i.e., As", s)
	}

	rank := strings.IndexByte(rankCodes, s[0])
	if rank < 0 {
		return Card{}, handerr.New(handerr.InvalidCardFormat, "invalid card %q: unknown rank %q", s, s[0])
	}

	var suit Suit
	switch s[1] {
	case 'c':
		suit = Clubs
	case 'd':
		suit = Diamonds
	case 'h':
		suit = Hearts
	case 's':
		suit = Spades
	default:
		return Card{}, handerr.New(handerr.InvalidCardFormat, "invalid card %q: unknown suit %q", s, s[1])
	}

	return Card{
		Rank: rank + 2,
		Suit: suit,
	}, nil
}

// ParseCards parses a concatenation of two character card codes, i.e., "AsKd"
func ParseCards(s string) (Hand, error) {
	if len(s)%2 != 0 {
		return nil, handerr.New(handerr.InvalidCardFormat, "invalid cards %q: expected pairs of rank and suit", s)
	}

	cards := make(Hand, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}

		cards = append(cards, card)
	}

	return cards, nil
}

// MustParseCards is like ParseCards but panics on error
// It is intended for fixtures and tests
func MustParseCards(s string) Hand {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("could not parse cards %q: %v", s, err))
	}

	return cards
}
