package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps records in process memory. Nothing survives a restart.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payload, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}

	return slices.Clone(payload), nil
}

func (m *MemoryBackend) Put(_ context.Context, key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = slices.Clone(payload)

	return nil
}
