// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package view bridges consumers (HTTP handlers, schedulers, tests) to one
// collection each. A binding loads the collection whole, mutates it in
// memory, persists the whole list back and notifies the change bus.
// Projection (filter/sort/paginate) is pure and never touches storage.
package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/olegiv/ocrm-go/internal/bus"
	"github.com/olegiv/ocrm-go/internal/id"
	"github.com/olegiv/ocrm-go/internal/store"
)

// ErrNotFound indicates the record id does not exist in the collection.
var ErrNotFound = errors.New("record not found")

// Binding connects one consumer to one collection. Mutations are
// load-modify-write over the whole list, so the binding serializes them:
// without the lock, two concurrent writers would each persist their own
// copy and the later one would silently drop the earlier record.
type Binding[T any] struct {
	coll     *store.Collection[T]
	notifier bus.Notifier
	recordID func(T) string
	setID    func(*T, string)
	prepare  func(*T) error

	mu sync.Mutex
}

// NewBinding creates a binding over a collection. recordID and setID give
// the binding access to the identifier field of the concrete record type.
func NewBinding[T any](coll *store.Collection[T], notifier bus.Notifier,
	recordID func(T) string, setID func(*T, string)) *Binding[T] {
	return &Binding[T]{
		coll:     coll,
		notifier: notifier,
		recordID: recordID,
		setID:    setID,
	}
}

// WithPrepare sets a hook that runs on every record before it is written
// (validation, sanitization, credential hashing). An error from the hook
// aborts the mutation before anything is persisted.
func (b *Binding[T]) WithPrepare(fn func(*T) error) *Binding[T] {
	b.prepare = fn
	return b
}

// Collection returns the bound collection name.
func (b *Binding[T]) Collection() string {
	return b.coll.Name()
}

// Subscribe registers a handler for changes to the bound collection.
func (b *Binding[T]) Subscribe(h bus.Handler) func() {
	return b.notifier.Subscribe(b.coll.Name(), h)
}

// Load reads the collection. Reads are fail-open; see store.Collection.
func (b *Binding[T]) Load(ctx context.Context) []T {
	return b.coll.Read(ctx)
}

// Get returns the record with the given id.
func (b *Binding[T]) Get(ctx context.Context, recordID string) (T, error) {
	for _, rec := range b.Load(ctx) {
		if b.recordID(rec) == recordID {
			return rec, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s in %s", ErrNotFound, recordID, b.coll.Name())
}

// Add assigns an identifier, appends the record, persists the full list
// and notifies subscribers. The stored record is returned.
func (b *Binding[T]) Add(ctx context.Context, rec T) (T, error) {
	var zero T
	if err := b.runPrepare(&rec); err != nil {
		return zero, err
	}

	b.setID(&rec, id.New())

	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.Load(ctx)
	list = append(list, rec)
	if err := b.coll.Write(ctx, list); err != nil {
		return zero, fmt.Errorf("persisting %s: %w", b.coll.Name(), err)
	}

	_ = b.notifier.Publish(ctx, b.coll.Name())
	return rec, nil
}

// Update merges the patch onto the stored record with the given id,
// persists the full list and notifies subscribers. Fields absent from the
// patch keep their previous values; the identifier never changes.
func (b *Binding[T]) Update(ctx context.Context, recordID string, patch json.RawMessage) (T, error) {
	var zero T

	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.Load(ctx)

	for i, rec := range list {
		if b.recordID(rec) != recordID {
			continue
		}

		merged, err := mergeRecord(rec, patch)
		if err != nil {
			return zero, fmt.Errorf("merging patch: %w", err)
		}
		b.setID(&merged, recordID)

		if err := b.runPrepare(&merged); err != nil {
			return zero, err
		}

		list[i] = merged
		if err := b.coll.Write(ctx, list); err != nil {
			return zero, fmt.Errorf("persisting %s: %w", b.coll.Name(), err)
		}

		_ = b.notifier.Publish(ctx, b.coll.Name())
		return merged, nil
	}

	return zero, fmt.Errorf("%w: %s in %s", ErrNotFound, recordID, b.coll.Name())
}

// Remove filters out the record with the given id, persists the remainder
// (relative order preserved) and notifies subscribers.
func (b *Binding[T]) Remove(ctx context.Context, recordID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.Load(ctx)

	kept := make([]T, 0, len(list))
	found := false
	for _, rec := range list {
		if b.recordID(rec) == recordID {
			found = true
			continue
		}
		kept = append(kept, rec)
	}

	if !found {
		return fmt.Errorf("%w: %s in %s", ErrNotFound, recordID, b.coll.Name())
	}

	if err := b.coll.Write(ctx, kept); err != nil {
		return fmt.Errorf("persisting %s: %w", b.coll.Name(), err)
	}

	_ = b.notifier.Publish(ctx, b.coll.Name())
	return nil
}

// Replace persists a caller-built list wholesale (cart clear, checkout).
func (b *Binding[T]) Replace(ctx context.Context, list []T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.coll.Write(ctx, list); err != nil {
		return fmt.Errorf("persisting %s: %w", b.coll.Name(), err)
	}
	_ = b.notifier.Publish(ctx, b.coll.Name())
	return nil
}

func (b *Binding[T]) runPrepare(rec *T) error {
	if b.prepare == nil {
		return nil
	}
	return b.prepare(rec)
}

// mergeRecord overlays patch keys onto the JSON form of current and
// decodes the result back into the record type. Decoding goes through the
// record's tolerant UnmarshalJSON, so legacy field names in patches are
// normalized the same way stored data is.
func mergeRecord[T any](current T, patch json.RawMessage) (T, error) {
	var zero T

	curJSON, err := json.Marshal(current)
	if err != nil {
		return zero, err
	}

	var base map[string]json.RawMessage
	if err := json.Unmarshal(curJSON, &base); err != nil {
		return zero, err
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(patch, &overlay); err != nil {
		return zero, err
	}
	for k, v := range overlay {
		base[k] = v
	}

	mergedJSON, err := json.Marshal(base)
	if err != nil {
		return zero, err
	}

	var merged T
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return zero, err
	}
	return merged, nil
}
