package store

import (
	"context"
	"sync"
)

// memorySessionStore keeps the credential in process memory only. It is the
// default store: a restart of the client logs the user out.
type memorySessionStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemorySessionStore returns an empty in-memory [SessionStore].
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{}
}

func (m *memorySessionStore) Get(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.set {
		return "", ErrSessionNotFound
	}
	return m.token, nil
}

func (m *memorySessionStore) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.set = true
	return nil
}

func (m *memorySessionStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.set = false
	return nil
}
