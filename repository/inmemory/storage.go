package storage

import (
	"context"
	"sync"
)

// Storage is a process-local key-value store. Values are copied on the way
// in and out so callers never share a backing array with the map.
type Storage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewStorage() *Storage {
	return &Storage{
		slots: make(map[string][]byte),
	}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, exists := s.slots[key]
	if !exists {
		return nil, false, nil
	}
	return clone(value), true, nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = clone(value)
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

func (s *Storage) Close() error { return nil }

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
