package store

import (
	"context"
	"sync"

	"tally/internal/election/models"
	"tally/pkg/platform/sentinel"
)

// InMemoryStore keeps the latest snapshot as an encoded document so callers
// never share slices with the stored copy.
type InMemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(_ context.Context, snap models.Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

func (s *InMemoryStore) Load(_ context.Context) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return models.Snapshot{}, sentinel.ErrNotFound
	}
	return decode(s.data)
}
