package memory

import (
	"context"
	"sync"

	"github.com/goodtune/countup/internal/storage"
)

// Store is a process-lifetime history store
type Store struct {
	mu      sync.RWMutex
	records []storage.Record
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// Prepend adds a record to the front of the history
func (s *Store) Prepend(ctx context.Context, record storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]storage.Record{record}, s.records...)
	return nil
}

// List returns a copy of the history, most recent first
func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Clear discards the whole history
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}
