// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package bus

import (
	"context"
	"sync"
)

// subscription wraps a handler so unsubscribe can remove it by identity.
type subscription struct {
	handler Handler
}

// Local is an in-process notifier. Handlers for a collection fire
// synchronously, in the order they subscribed.
type Local struct {
	mu   sync.RWMutex
	subs map[string][]*subscription
}

// NewLocal creates an in-process notifier.
func NewLocal() *Local {
	return &Local{subs: make(map[string][]*subscription)}
}

// Publish calls every handler subscribed to the collection, in
// registration order. It never fails.
func (b *Local) Publish(_ context.Context, collection string) error {
	b.mu.RLock()
	subs := make([]*subscription, len(b.subs[collection]))
	copy(subs, b.subs[collection])
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(collection)
	}
	return nil
}

// Subscribe registers a handler for the collection.
func (b *Local) Subscribe(collection string, h Handler) func() {
	s := &subscription{handler: h}

	b.mu.Lock()
	b.subs[collection] = append(b.subs[collection], s)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[collection]
		for i, cur := range list {
			if cur == s {
				b.subs[collection] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Ensure Local implements Notifier.
var _ Notifier = (*Local)(nil)
