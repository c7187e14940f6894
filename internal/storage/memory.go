package storage

import (
	"context"
	"sync"
)

// Memory is an in-process snapshot backend. It is the default for tests
// and for running without any durable medium configured.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory builds an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Load returns the stored value for key.
func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Save stores the whole snapshot.
func (m *Memory) Save(_ context.Context, snapshot map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, value := range snapshot {
		stored := make([]byte, len(value))
		copy(stored, value)
		m.values[key] = stored
	}
	return nil
}
