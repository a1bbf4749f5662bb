package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mutex     sync.RWMutex
	token     string
	expiresAt int64
}

// NewMemory builds an in-process store; the credential does not survive a
// restart. Used by tests and short-lived tooling.
func NewMemory() Store {
	return &memoryStore{}
}

func (s *memoryStore) Save(_ context.Context, token string, expiresAt int64) error {
	s.mutex.Lock()
	s.token = token
	s.expiresAt = expiresAt
	s.mutex.Unlock()
	return nil
}

func (s *memoryStore) Load(_ context.Context) (string, int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.token, s.expiresAt, nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mutex.Lock()
	s.token = ""
	s.expiresAt = 0
	s.mutex.Unlock()
	return nil
}

func (s *memoryStore) Close(context.Context) error {
	return nil
}
