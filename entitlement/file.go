package entitlement

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the whole ledger as a single JSON document. Writes go
// to a temporary file in the same directory followed by a rename, so a
// crash mid-write leaves the previous ledger intact.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates the parent directory if needed. The file itself is
// created on the first write.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("could not create ledger directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) load() (map[string]Record, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read ledger file: %w", err)
	}
	ledger := map[string]Record{}
	if err := json.Unmarshal(data, &ledger); err != nil {
		return nil, fmt.Errorf("could not parse ledger file: %w", err)
	}
	return ledger, nil
}

func (s *FileStore) save(ledger map[string]Record) error {
	data, err := json.MarshalIndent(ledger, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal ledger: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("could not write ledger file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Get(ctx context.Context, userID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, err := s.load()
	if err != nil {
		return nil, err
	}
	rec, ok := ledger[userID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *FileStore) Set(ctx context.Context, userID string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, err := s.load()
	if err != nil {
		return err
	}
	ledger[userID] = rec
	return s.save(ledger)
}

func (s *FileStore) IncrementConsumed(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, err := s.load()
	if err != nil {
		return err
	}
	rec, ok := ledger[userID]
	if !ok {
		return ErrNotRegistered
	}
	rec.Consumed++
	ledger[userID] = rec
	return s.save(ledger)
}

// All returns a copy of the whole ledger, for offline inspection tools.
func (s *FileStore) All(ctx context.Context) (map[string]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.load()
	return err
}

func (s *FileStore) Close() error {
	return nil
}
