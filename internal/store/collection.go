// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store treats the key-value engine as a miniature multi-table
// database: each named collection is one serialized list of records, read
// and written whole. Reads are fail-open by contract. Missing keys,
// malformed payloads and backend errors all degrade to an empty (or
// seeded) list and are never surfaced to callers.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/olegiv/ocrm-go/internal/kv"
)

// Collection provides type-safe access to one named collection.
// It handles JSON serialization and the seed-on-first-read behavior.
type Collection[T any] struct {
	engine kv.KV
	name   string
	seed   func() []T
}

// NewCollection creates a collection bound to the given engine and key.
func NewCollection[T any](engine kv.KV, name string) *Collection[T] {
	return &Collection[T]{engine: engine, name: name}
}

// WithSeed sets the seed function used when the collection is read for the
// first time and found absent. An already-stored empty list is not
// re-seeded, so deleting every record sticks.
func (c *Collection[T]) WithSeed(fn func() []T) *Collection[T] {
	c.seed = fn
	return c
}

// Name returns the collection key.
func (c *Collection[T]) Name() string {
	return c.name
}

// Read returns the stored list. It never fails: an absent key yields the
// seeded list (persisted on the way out), a malformed payload or backend
// error yields an empty list and a WARN log entry.
func (c *Collection[T]) Read(ctx context.Context) []T {
	data, err := c.engine.Get(ctx, c.name)
	if errors.Is(err, kv.ErrNotFound) {
		return c.seedList(ctx)
	}
	if err != nil {
		slog.Warn("collection read failed", "collection", c.name, "error", err)
		return []T{}
	}

	if len(data) == 0 {
		return c.seedList(ctx)
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		// Malformed stored data is treated as no data, never as a fatal error.
		slog.Warn("collection payload malformed, treating as empty",
			"collection", c.name, "error", err)
		return []T{}
	}
	if list == nil {
		list = []T{}
	}
	return list
}

// ReadQuiet returns the stored list without logging or seeding. An
// absent key or malformed payload degrades to an empty list; backend
// errors are returned. The audit handler reads through it, because a
// log entry from inside its own read path would re-enter the handler.
func (c *Collection[T]) ReadQuiet(ctx context.Context) ([]T, error) {
	data, err := c.engine.Get(ctx, c.name)
	if errors.Is(err, kv.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var list []T
	if len(data) == 0 || json.Unmarshal(data, &list) != nil {
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// Write serializes and persists the full list, replacing any prior value.
func (c *Collection[T]) Write(ctx context.Context, list []T) error {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.engine.Set(ctx, c.name, data)
}

// seedList materializes and persists the seed records.
func (c *Collection[T]) seedList(ctx context.Context) []T {
	if c.seed == nil {
		return []T{}
	}
	list := c.seed()
	if err := c.Write(ctx, list); err != nil {
		slog.Warn("persisting seed failed", "collection", c.name, "error", err)
	}
	slog.Info("seeded collection", "collection", c.name, "records", len(list))
	return list
}

// Value provides type-safe access to a single-record key such as the
// current user or the last order.
type Value[T any] struct {
	engine kv.KV
	key    string
}

// NewValue creates a single-record accessor for the given key.
func NewValue[T any](engine kv.KV, key string) *Value[T] {
	return &Value[T]{engine: engine, key: key}
}

// Get retrieves the value. Returns the zero value and false if the key is
// absent or the payload cannot be parsed.
func (v *Value[T]) Get(ctx context.Context) (T, bool) {
	var value T
	data, err := v.engine.Get(ctx, v.key)
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		slog.Warn("value payload malformed", "key", v.key, "error", err)
		return value, false
	}
	return value, true
}

// Set stores the value, replacing any prior one.
func (v *Value[T]) Set(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return v.engine.Set(ctx, v.key, data)
}

// Clear removes the key.
func (v *Value[T]) Clear(ctx context.Context) error {
	return v.engine.Delete(ctx, v.key)
}
