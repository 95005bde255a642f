// Package kv provides the key-value engine backing the record store.
// All implementations must be thread-safe.
// Values are opaque []byte so collections serialize the same way against
// the in-memory and the SQLite engines.
package kv

import "context"

// KV defines the interface for key-value engine implementations.
type KV interface {
	// Get retrieves a value.
	// Returns nil and ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value, replacing any prior value under the key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Has checks if a key exists.
	Has(ctx context.Context, key string) (bool, error)

	// Keys returns all stored keys in unspecified order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases any resources held by the engine.
	Close() error
}

// Error represents an error type for key-value operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key was not found in the store.
	ErrNotFound Error = "key not found"

	// ErrClosed indicates the engine has been closed.
	ErrClosed Error = "kv engine closed"
)
