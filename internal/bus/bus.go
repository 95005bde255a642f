// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package bus fans out "collection changed" signals to interested
// consumers. Subscriptions are keyed by collection name, so a subscriber
// never sees noise from collections it does not care about. Within one
// instance handlers fire synchronously in registration order; across
// instances delivery is best-effort with no ordering guarantee.
package bus

import "context"

// Handler receives the name of the collection that changed.
type Handler func(collection string)

// Notifier is the publish/subscribe contract used by view bindings.
type Notifier interface {
	// Publish signals that the named collection changed.
	Publish(ctx context.Context, collection string) error

	// Subscribe registers a handler for the named collection and returns
	// a function that removes it.
	Subscribe(collection string, h Handler) (unsubscribe func())
}
