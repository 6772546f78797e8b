package handstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps hands in memory
// It is safe for concurrent use
type MemoryStore struct {
	mu    sync.RWMutex
	hands []*Hand
	byID  map[uuid.UUID]*Hand
}

// NewMemoryStore returns an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		hands: make([]*Hand, 0),
		byID:  make(map[uuid.UUID]*Hand),
	}
}

// Save stores the hand
func (m *MemoryStore) Save(_ context.Context, hand *Hand) (*Hand, error) {
	h := prepare(hand)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[h.ID]; ok {
		return nil, fmt.Errorf("hand %s already exists", h.ID)
	}

	m.hands = append(m.hands, h)
	m.byID[h.ID] = h

	return prepare(h), nil
}

// FindByID returns the hand with the ID
func (m *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Hand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	return prepare(h), nil
}

// FindAll returns up to limit hands, the most recent first
func (m *MemoryStore) FindAll(_ context.Context, limit int) ([]*Hand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hands := make([]*Hand, 0, limit)
	for i := len(m.hands) - 1; i >= 0 && len(hands) < limit; i-- {
		hands = append(hands, prepare(m.hands[i]))
	}

	return hands, nil
}
