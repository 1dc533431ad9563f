package trips

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps trips in a map. Used by tests and as a
// dependency-free fallback when no database is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	trips map[string]Trip
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{trips: make(map[string]Trip)}
}

var _ Store = (*MemoryStore)(nil)

// GetByID returns a copy of the stored trip, or ErrNotFound.
func (m *MemoryStore) GetByID(_ context.Context, id string) (*Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

// Upsert stores a copy of the trip, assigning an id if absent.
func (m *MemoryStore) Upsert(_ context.Context, trip *Trip) (*Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *trip
	if stored.ID == "" {
		stored.ID = uuid.New().String()
		stored.CreatedAt = time.Now()
	}
	stored.UpdatedAt = time.Now()
	m.trips[stored.ID] = stored

	out := stored
	return &out, nil
}
