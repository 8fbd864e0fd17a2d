package entitlement

import (
	"context"
	"sync"
)

// MemoryStore is a map-backed Store for tests and stub wiring. It does not
// survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]Record{}}
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Set(ctx context.Context, userID string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[userID] = rec
	return nil
}

func (s *MemoryStore) IncrementConsumed(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[userID]
	if !ok {
		return ErrNotRegistered
	}
	rec.Consumed++
	s.records[userID] = rec
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
