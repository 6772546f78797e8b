package handstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no hand has the requested ID
var ErrNotFound = errors.New("hand not found")

// Hand is a settled hand, as it is stored
type Hand struct {
	ID                 uuid.UUID `json:"id"`
	Stacks             []int     `json:"stacks"`
	DealerPosition     int       `json:"dealer_position"`
	SmallBlindPosition int       `json:"small_blind_position"`
	BigBlindPosition   int       `json:"big_blind_position"`
	HoleCards          []string  `json:"hole_cards"`
	Actions            string    `json:"actions"`
	BoardCards         string    `json:"board_cards"`
	Payoffs            []int     `json:"payoffs"`
	CreatedAt          time.Time `json:"created_at"`
}

// Store persists settled hands
type Store interface {
	// Save stores the hand, assigning an ID and a creation time when they are missing
	Save(ctx context.Context, hand *Hand) (*Hand, error)
	// FindByID returns ErrNotFound if the hand does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Hand, error)
	// FindAll returns up to limit hands, the most recent first
	FindAll(ctx context.Context, limit int) ([]*Hand, error)
}

// prepare returns a copy of the hand that is ready to be saved
func prepare(hand *Hand) *Hand {
	h := *hand
	h.Stacks = append([]int(nil), hand.Stacks...)
	h.HoleCards = append([]string(nil), hand.HoleCards...)
	h.Payoffs = append([]int(nil), hand.Payoffs...)

	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}

	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}

	return &h
}
