package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store used by tests and as a fallback when no
// database path can be resolved.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites forces Set/Delete/MultiSet to return an error.
	// Tests use it to exercise storage-failure paths.
	FailWrites bool

	// FailReads forces Get/MultiGet to return an error.
	FailReads bool
}

// ErrUnavailable is returned by Memory when failure injection is enabled.
var ErrUnavailable = errStore("store unavailable")

type errStore string

func (e errStore) Error() string { return string(e) }

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads {
		return "", false, ErrUnavailable
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	delete(m.data, key)
	return nil
}

func (m *Memory) MultiGet(_ context.Context, keys []string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads {
		return nil, ErrUnavailable
	}
	result := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			result[k] = v
		}
	}
	return result, nil
}

func (m *Memory) MultiSet(_ context.Context, pairs []Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrUnavailable
	}
	for _, p := range pairs {
		m.data[p.Key] = p.Value
	}
	return nil
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
