package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/orrery/pkg/layout"
)

// MemStore keeps layouts in process memory. It backs the server when no
// MongoDB is configured; stored layouts vanish on restart.
type MemStore struct {
	mu      sync.RWMutex
	layouts map[string]layout.Layout
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() Store {
	return &MemStore{layouts: make(map[string]layout.Layout)}
}

// Save stores the layout under a fresh uuid and returns it.
func (s *MemStore) Save(_ context.Context, l *layout.Layout) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.layouts[id] = *l
	s.mu.Unlock()
	return id, nil
}

// Get retrieves a stored layout by id.
func (s *MemStore) Get(_ context.Context, id string) (*layout.Layout, error) {
	s.mu.RLock()
	l, ok := s.layouts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close(context.Context) error { return nil }

// Ensure MemStore implements Store.
var _ Store = (*MemStore)(nil)
