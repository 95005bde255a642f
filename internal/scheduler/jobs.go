// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"time"

	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/view"
)

// PruneEvents removes audit events older than the retention window.
// The filtered list is written back whole, like any other mutation.
func PruneEvents(bindings *view.Bindings, retention time.Duration) func() error {
	return func() error {
		ctx := context.Background()
		cutoff := time.Now().Add(-retention)

		events := bindings.Events.Load(ctx)
		kept := make([]model.Event, 0, len(events))
		for _, e := range events {
			if e.CreatedAt.After(cutoff) {
				kept = append(kept, e)
			}
		}

		if len(kept) == len(events) {
			return nil
		}
		return bindings.Events.Replace(ctx, kept)
	}
}

// ClearStaleCart drops cart items that have sat unpurchased beyond the
// staleness window. Items without a timestamp are kept.
func ClearStaleCart(bindings *view.Bindings, staleAfter time.Duration) func() error {
	return func() error {
		ctx := context.Background()
		cutoff := time.Now().Add(-staleAfter)

		items := bindings.Cart.Load(ctx)
		kept := make([]model.CartItem, 0, len(items))
		for _, item := range items {
			if item.AddedAt.IsZero() || item.AddedAt.After(cutoff) {
				kept = append(kept, item)
			}
		}

		if len(kept) == len(items) {
			return nil
		}
		return bindings.Cart.Replace(ctx, kept)
	}
}
