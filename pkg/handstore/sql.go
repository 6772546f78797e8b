package handstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"handsettle-server/pkg/db"
)

const handColumns = `
hands.id,
hands.stacks,
hands.dealer_position,
hands.small_blind_position,
hands.big_blind_position,
hands.hole_cards,
hands.actions,
hands.board_cards,
hands.payoffs,
hands.created_at`

// SQLStore keeps hands in Postgres or SQLite
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLStore returns a store backed by an open database
// driver is one of db.DriverPostgres or db.DriverSQLite
func NewSQLStore(dbh *sql.DB, driver string) (*SQLStore, error) {
	switch driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	return &SQLStore{
		db:     dbh,
		driver: driver,
	}, nil
}

// Save stores the hand
func (s *SQLStore) Save(ctx context.Context, hand *Hand) (*Hand, error) {
	h := prepare(hand)

	stacks, err := json.Marshal(h.Stacks)
	if err != nil {
		return nil, err
	}

	holeCards, err := json.Marshal(h.HoleCards)
	if err != nil {
		return nil, err
	}

	payoffs, err := json.Marshal(h.Payoffs)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO hands (id, stacks, dealer_position, small_blind_position, big_blind_position, hole_cards, actions, board_cards, payoffs, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if _, err := s.db.ExecContext(ctx, s.rebind(query), h.ID.String(), string(stacks), h.DealerPosition, h.SmallBlindPosition,
		h.BigBlindPosition, string(holeCards), h.Actions, h.BoardCards, string(payoffs), h.CreatedAt); err != nil {
		return nil, fmt.Errorf("could not save hand %s: %w", h.ID, err)
	}

	return h, nil
}

// FindByID returns the hand with the ID
func (s *SQLStore) FindByID(ctx context.Context, id uuid.UUID) (*Hand, error) {
	query := `SELECT ` + handColumns + ` FROM hands WHERE hands.id = $1`

	row := s.db.QueryRowContext(ctx, s.rebind(query), id.String())
	h, err := getHandByRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return h, nil
}

// FindAll returns up to limit hands, the most recent first
func (s *SQLStore) FindAll(ctx context.Context, limit int) ([]*Hand, error) {
	query := `SELECT ` + handColumns + ` FROM hands ORDER BY hands.seq DESC LIMIT $1`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hands := make([]*Hand, 0, limit)
	for rows.Next() {
		h, err := getHandByRow(rows)
		if err != nil {
			return nil, err
		}

		hands = append(hands, h)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return hands, nil
}

func getHandByRow(row db.Scanner) (*Hand, error) {
	var h Hand
	var id string
	var stacks, holeCards, payoffs []byte
	if err := row.Scan(&id, &stacks, &h.DealerPosition, &h.SmallBlindPosition, &h.BigBlindPosition, &holeCards,
		&h.Actions, &h.BoardCards, &payoffs, &h.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid hand id %q: %w", id, err)
	}
	h.ID = parsed

	for _, col := range []struct {
		data []byte
		dst  interface{}
	}{
		{stacks, &h.Stacks},
		{holeCards, &h.HoleCards},
		{payoffs, &h.Payoffs},
	} {
		if err := json.Unmarshal(col.data, col.dst); err != nil {
			return nil, fmt.Errorf("could not decode hand %s: %w", id, err)
		}
	}

	return &h, nil
}

// rebind rewrites $1 style placeholders for drivers that only understand ?
// Every placeholder must appear once and in order.
func (s *SQLStore) rebind(query string) string {
	if s.driver != db.DriverSQLite {
		return query
	}

	var sb strings.Builder
	for i := 0; i < len(query); i++ {
		if query[i] != '$' {
			sb.WriteByte(query[i])
			continue
		}

		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}

		if _, err := strconv.Atoi(query[i+1 : j]); err != nil {
			sb.WriteByte(query[i])
			continue
		}

		sb.WriteByte('?')
		i = j - 1
	}

	return sb.String()
}
