package kv

import (
	"context"
	"sync"
	"sync/atomic"
)

// Memory is a thread-safe in-memory key-value engine.
// It backs ephemeral runs and tests where no durability is wanted.
type Memory struct {
	data   sync.Map
	closed atomic.Bool
}

// NewMemory creates a new in-memory engine.
func NewMemory() *Memory {
	return &Memory{}
}

// Get retrieves a value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	val, ok := m.data.Load(key)
	if !ok {
		return nil, ErrNotFound
	}

	stored := val.([]byte)
	// Return a copy to prevent mutation
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value, replacing any prior value under the key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if m.closed.Load() {
		return ErrClosed
	}

	// Copy the value to prevent external mutation
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	m.data.Store(key, valueCopy)
	return nil
}

// Delete removes a key.
func (m *Memory) Delete(_ context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}

	m.data.Delete(key)
	return nil
}

// Has checks if a key exists.
func (m *Memory) Has(_ context.Context, key string) (bool, error) {
	if m.closed.Load() {
		return false, ErrClosed
	}

	_, ok := m.data.Load(key)
	return ok, nil
}

// Keys returns all stored keys.
func (m *Memory) Keys(_ context.Context) ([]string, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	var keys []string
	m.data.Range(func(key, _ any) bool {
		keys = append(keys, key.(string))
		return true
	})
	return keys, nil
}

// Close marks the engine closed. Further operations return ErrClosed.
func (m *Memory) Close() error {
	m.closed.Store(true)
	return nil
}

// Ensure Memory implements KV.
var _ KV = (*Memory)(nil)
