package handanalyzer

import (
	"fmt"
	"sort"

	"handsettle-server/pkg/deck"
)

// handSize is the number of cards that make up a poker hand
const handSize = 5

// strengthBase is one more than the highest rank, so each tie-break rank fits in one digit
const strengthBase = 15

// HandAnalyzer finds the best five card hand out of five to seven cards
type HandAnalyzer struct {
	cards deck.Hand
	best  deck.Hand

	hand     Hand
	values   []int
	strength int
}

// New will return a new HandAnalyzer instance
// Every five card subset of cards is considered. With fewer than five cards, the cards are analyzed as-is.
func New(cards deck.Hand) *HandAnalyzer {
	h := &HandAnalyzer{
		cards: cards.Clone(),
	}

	if len(cards) <= handSize {
		h.best, h.hand, h.values = evaluate(h.cards)
		h.strength = calculateStrength(h.hand, h.values)
		return h
	}

	h.strength = -1
	forEachCombination(len(h.cards), handSize, func(idx []int) {
		subset := make(deck.Hand, handSize)
		for i, j := range idx {
			subset[i] = h.cards[j]
		}

		best, hand, values := evaluate(subset)
		if s := calculateStrength(hand, values); s > h.strength {
			h.best = best
			h.hand = hand
			h.values = values
			h.strength = s
		}
	})

	return h
}

// GetHand will return the best possible hand the cards can make
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetStrength returns the strength of the hand
// A higher strength always beats a lower one, and equal strengths split
func (h *HandAnalyzer) GetStrength() int {
	return h.strength
}

// GetValues returns the ranks that decide ties within the hand category, most significant first
func (h *HandAnalyzer) GetValues() []int {
	return append([]int(nil), h.values...)
}

// BestFive returns the cards that make up the best hand, most significant first
func (h *HandAnalyzer) BestFive() deck.Hand {
	return h.best.Clone()
}

// Compare returns a positive number if h beats other, a negative number if other wins, and 0 for a tie
func (h *HandAnalyzer) Compare(other *HandAnalyzer) int {
	return h.strength - other.strength
}

// Description returns a human friendly description, i.e., "Full house, kings full of fours"
func (h *HandAnalyzer) Description() string {
	v := h.values
	switch h.hand {
	case StraightFlush:
		if v[0] == deck.Ace {
			return "Royal flush"
		}
		return fmt.Sprintf("Straight flush, %s high", rankName(v[0]))
	case FourOfAKind:
		return fmt.Sprintf("Four of a kind, %s", rankPlural(v[0]))
	case FullHouse:
		return fmt.Sprintf("Full house, %s full of %s", rankPlural(v[0]), rankPlural(v[1]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", rankName(v[0]))
	case Straight:
		return fmt.Sprintf("Straight, %s high", rankName(v[0]))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a kind, %s", rankPlural(v[0]))
	case TwoPair:
		return fmt.Sprintf("Two pair, %s and %s", rankPlural(v[0]), rankPlural(v[1]))
	case OnePair:
		return fmt.Sprintf("Pair of %s", rankPlural(v[0]))
	}

	if len(v) == 0 {
		return HighCard.String()
	}

	return fmt.Sprintf("High card, %s", rankName(v[0]))
}

// evaluate scores at most five cards
func evaluate(cards deck.Hand) (deck.Hand, Hand, []int) {
	if len(cards) == 0 {
		return deck.Hand{}, HighCard, nil
	}

	counts := make(map[int]int, len(cards))
	for _, card := range cards {
		counts[card.Rank]++
	}

	// cards grouped by multiplicity first, then by rank
	ordered := cards.Clone()
	sort.SliceStable(ordered, func(i, j int) bool {
		ci, cj := counts[ordered[i].Rank], counts[ordered[j].Rank]
		if ci != cj {
			return ci > cj
		}

		return ordered[i].Rank > ordered[j].Rank
	})

	groups := make([]int, 0, len(counts))
	for i := 0; i < len(ordered); i += counts[ordered[i].Rank] {
		groups = append(groups, ordered[i].Rank)
	}

	flush := isFlush(ordered)
	straight, high := isStraight(ordered, len(counts))
	if straight && high == 5 {
		// wheel: the ace plays low
		ordered = append(ordered[1:], ordered[0])
	}

	switch {
	case straight && flush:
		return ordered, StraightFlush, []int{high}
	case counts[groups[0]] == 4:
		return ordered, FourOfAKind, groups
	case counts[groups[0]] == 3 && len(groups) > 1 && counts[groups[1]] == 2:
		return ordered, FullHouse, groups
	case flush:
		return ordered, Flush, groups
	case straight:
		return ordered, Straight, []int{high}
	case counts[groups[0]] == 3:
		return ordered, ThreeOfAKind, groups
	case counts[groups[0]] == 2 && len(groups) > 1 && counts[groups[1]] == 2:
		return ordered, TwoPair, groups
	case counts[groups[0]] == 2:
		return ordered, OnePair, groups
	}

	return ordered, HighCard, groups
}

func isFlush(cards deck.Hand) bool {
	if len(cards) != handSize {
		return false
	}

	for _, card := range cards[1:] {
		if card.Suit != cards[0].Suit {
			return false
		}
	}

	return true
}

// isStraight expects cards sorted by rank descending
func isStraight(cards deck.Hand, distinct int) (bool, int) {
	if len(cards) != handSize || distinct != handSize {
		return false, 0
	}

	if cards[0].Rank-cards[4].Rank == 4 {
		return true, cards[0].Rank
	}

	if cards[0].Rank == deck.Ace && cards[1].Rank == 5 {
		return true, 5
	}

	return false, 0
}

func calculateStrength(hand Hand, values []int) int {
	strength := int(hand)
	for i := 0; i < handSize; i++ {
		strength *= strengthBase
		if i < len(values) {
			strength += values[i]
		}
	}

	return strength
}

// forEachCombination calls fn with every k-sized, ascending set of indexes below n
func forEachCombination(n, k int, fn func(idx []int)) {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		fn(idx)

		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}

		if i < 0 {
			return
		}

		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func rankName(rank int) string {
	switch rank {
	case deck.Jack:
		return "jack"
	case deck.Queen:
		return "queen"
	case deck.King:
		return "king"
	case deck.Ace:
		return "ace"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

func rankPlural(rank int) string {
	if rank == 6 {
		return "sixes"
	}

	return rankName(rank) + "s"
}
