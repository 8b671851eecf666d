package identity

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu sync.Mutex
	id string
}

// NewMemoryStore devuelve un Store en memoria; el id vive lo que vive el proceso.
func NewMemoryStore() Store {
	return &memoryStore{}
}

func (s *memoryStore) Get(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, !blank(s.id), nil
}

func (s *memoryStore) SetIfAbsent(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if blank(s.id) {
		s.id = id
	}
	return s.id, nil
}
