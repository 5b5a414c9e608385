package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store for development, tests and single-instance
// deployments. Records are kept encoded, like in Redis.
type Memory[V any] struct {
	records   map[string][]byte
	marshaler Marshaler[V]
	mu        sync.RWMutex
}

// NewMemory creates an in-memory store.
// If m is nil, records are encoded as JSON.
func NewMemory[V any](m Marshaler[V]) *Memory[V] {
	if m == nil {
		m = jsonMarshaler[V]{}
	}
	return &Memory[V]{
		records:   make(map[string][]byte),
		marshaler: m,
	}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.RLock()
	data, ok := m.records[key]
	m.mu.RUnlock()

	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return m.marshaler.Unmarshal(data)
}

func (m *Memory[V]) Put(_ context.Context, key string, value V) error {
	data, err := m.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = data
	return nil
}

func (m *Memory[V]) Insert(_ context.Context, key string, value V) error {
	data, err := m.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[key]; ok {
		return ErrExists
	}
	m.records[key] = data
	return nil
}

// Update holds the write lock while fn runs, so fn must not call back into m.
func (m *Memory[V]) Update(_ context.Context, key string, fn func(V, bool) (V, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var (
		current V
		found   bool
	)
	if data, ok := m.records[key]; ok {
		v, err := m.marshaler.Unmarshal(data)
		if err != nil {
			return err
		}
		current, found = v, true
	}

	next, err := fn(current, found)
	if err != nil {
		return err
	}

	data, err := m.marshaler.Marshal(next)
	if err != nil {
		return err
	}
	m.records[key] = data
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.records[key]
	return ok, nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.records)
	return nil
}

// Len returns the number of records.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

var _ Store[any] = (*Memory[any])(nil)
