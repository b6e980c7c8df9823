// Package store provides the key-value persistence contract used to save
// serialized collections, with in-memory and GORM-backed implementations.
package store

import (
	"context"
	"sync"
)

// Store loads and saves opaque blobs by key.
type Store interface {
	// Load returns the blob stored under key. ok is false when nothing has
	// been saved yet.
	Load(ctx context.Context, key string) (blob []byte, ok bool, err error)
	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, blob []byte) error
}

// Memory is a Store kept in process memory. It is used by tests and the
// CLI's dry runs.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Load implements Store.
func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}
