package mux

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	gmux "github.com/gorilla/mux"
	"handsettle-server/internal/rng"
	"handsettle-server/internal/util"
	"handsettle-server/pkg/deck"
	"handsettle-server/pkg/handerr"
	"handsettle-server/pkg/handstore"
	"handsettle-server/pkg/poker/texasholdem"
	"handsettle-server/pkg/settlement"
)

type handResponse struct {
	ID                 uuid.UUID `json:"id"`
	Stacks             []int     `json:"stacks"`
	DealerPosition     int       `json:"dealer_position"`
	SmallBlindPosition int       `json:"small_blind_position"`
	BigBlindPosition   int       `json:"big_blind_position"`
	HoleCards          []string  `json:"hole_cards"`
	Actions            string    `json:"actions"`
	BoardCards         string    `json:"board_cards"`
	Payoffs            []int     `json:"payoffs"`
}

func newHandResponse(h *handstore.Hand) handResponse {
	return handResponse{
		ID:                 h.ID,
		Stacks:             h.Stacks,
		DealerPosition:     h.DealerPosition,
		SmallBlindPosition: h.SmallBlindPosition,
		BigBlindPosition:   h.BigBlindPosition,
		HoleCards:          h.HoleCards,
		Actions:            h.Actions,
		BoardCards:         h.BoardCards,
		Payoffs:            h.Payoffs,
	}
}

// settle runs the settlement for a request and writes any failure
// Returns nil if a response has already been written
func (m *Mux) settle(w http.ResponseWriter, r *http.Request) (*settlement.Request, *settlement.Result) {
	var req settlement.Request
	if !decodeRequest(w, r, &req) {
		return nil, nil
	}

	if strings.TrimSpace(req.Actions) == "" {
		writeSettlementError(w, handerr.New(handerr.ValidationError, "actions cannot be empty"))
		return nil, nil
	}

	result, err := settlement.Settle(m.logger, req)
	if err != nil {
		m.logger.WithError(err).WithField("kind", handerr.KindOf(err)).Info("could not settle hand")
		writeSettlementError(w, err)
		return nil, nil
	}

	return &req, result
}

func (m *Mux) postHands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, result := m.settle(w, r)
		if result == nil {
			return
		}

		hand, err := m.store.Save(r.Context(), &handstore.Hand{
			Stacks:             req.Stacks,
			DealerPosition:     req.DealerPosition,
			SmallBlindPosition: req.SmallBlindPosition,
			BigBlindPosition:   req.BigBlindPosition,
			HoleCards:          req.HoleCards,
			Actions:            req.Actions,
			BoardCards:         req.BoardCards,
			Payoffs:            result.Payoffs,
		})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		m.logger.WithField("hand", hand.ID).Info("saved hand")
		writeJSON(w, http.StatusCreated, newHandResponse(hand))
	}
}

func (m *Mux) postHandsSettle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, result := m.settle(w, r)
		if result == nil {
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func (m *Mux) getHands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := util.ParseLimit(r.FormValue("limit"), m.config.historyLimit, m.config.historyLimit)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		hands, err := m.store.FindAll(r.Context(), limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		resp := make([]handResponse, len(hands))
		for i, h := range hands {
			resp[i] = newHandResponse(h)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (m *Mux) getHandsID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(gmux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		hand, err := m.store.FindByID(r.Context(), id)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newHandResponse(hand))
	}
}

type dealResponse struct {
	HoleCards  []string `json:"hole_cards"`
	BoardCards string   `json:"board_cards"`
	DeckHash   string   `json:"deck_hash"`
}

func (m *Mux) getHandsDeal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gen := m.rng
		if seedStr := r.FormValue("seed"); seedStr != "" {
			seed, err := strconv.ParseInt(seedStr, 10, 64)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, fmt.Errorf("seed must be an integer: got %q", seedStr))
				return
			}

			gen = rng.NewSeeded(seed)
		}

		d := deck.New()
		d.Shuffle(gen)

		resp, err := deal(d)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// deal draws six sets of hole cards and a full board off the top of the deck
func deal(d *deck.Deck) (*dealResponse, error) {
	const holeCards = 2
	const boardCards = 5

	if need := texasholdem.SeatCount*holeCards + boardCards; !d.CanDraw(need) {
		return nil, fmt.Errorf("cannot deal a hand: need %d cards, the deck has %d", need, d.CardsLeft())
	}

	resp := &dealResponse{
		HoleCards: make([]string, 0, texasholdem.SeatCount),
		DeckHash:  d.HashCode(),
	}

	draw := func(n int) (string, error) {
		cards := make(deck.Hand, 0, n)
		for i := 0; i < n; i++ {
			card, err := d.Draw()
			if err != nil {
				return "", err
			}

			cards.AddCard(card)
		}

		return cards.Codes(), nil
	}

	for i := 0; i < texasholdem.SeatCount; i++ {
		cards, err := draw(holeCards)
		if err != nil {
			return nil, err
		}

		resp.HoleCards = append(resp.HoleCards, cards)
	}

	board, err := draw(boardCards)
	if err != nil {
		return nil, err
	}

	resp.BoardCards = board
	return resp, nil
}
