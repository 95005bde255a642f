// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/olegiv/ocrm-go/internal/bus"
	"github.com/olegiv/ocrm-go/internal/kv"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/store"
	"github.com/olegiv/ocrm-go/internal/view"
)

func newTestBindings(t *testing.T) *view.Bindings {
	t.Helper()
	return view.New(store.New(kv.NewMemory()), bus.NewLocal())
}

func TestPruneEvents(t *testing.T) {
	bindings := newTestBindings(t)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []model.Event{
		{ID: "old", Level: model.EventLevelWarning, Message: "old", CreatedAt: now.Add(-40 * 24 * time.Hour)},
		{ID: "recent", Level: model.EventLevelError, Message: "recent", CreatedAt: now.Add(-time.Hour)},
	}
	if err := bindings.Events.Replace(ctx, seed); err != nil {
		t.Fatalf("seeding events failed: %v", err)
	}

	if err := PruneEvents(bindings, 30*24*time.Hour)(); err != nil {
		t.Fatalf("PruneEvents failed: %v", err)
	}

	kept := bindings.Events.Load(ctx)
	if len(kept) != 1 || kept[0].ID != "recent" {
		t.Errorf("kept = %+v, want only the recent event", kept)
	}
}

func TestPruneEvents_NothingToPrune(t *testing.T) {
	bindings := newTestBindings(t)
	ctx := context.Background()

	seed := []model.Event{{ID: "fresh", CreatedAt: time.Now().UTC()}}
	if err := bindings.Events.Replace(ctx, seed); err != nil {
		t.Fatalf("seeding events failed: %v", err)
	}

	writes := 0
	bindings.Events.Subscribe(func(string) { writes++ })

	if err := PruneEvents(bindings, 30*24*time.Hour)(); err != nil {
		t.Fatalf("PruneEvents failed: %v", err)
	}
	if writes != 0 {
		t.Errorf("prune wrote the collection with nothing to remove")
	}
}

func TestClearStaleCart(t *testing.T) {
	bindings := newTestBindings(t)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := []model.CartItem{
		{Product: model.Product{ID: "stale", Name: "Stale", Price: 1}, Quantity: 1, AddedAt: now.Add(-20 * 24 * time.Hour)},
		{Product: model.Product{ID: "fresh", Name: "Fresh", Price: 1}, Quantity: 1, AddedAt: now.Add(-time.Hour)},
		{Product: model.Product{ID: "untimed", Name: "Untimed", Price: 1}, Quantity: 1},
	}
	if err := bindings.Cart.Replace(ctx, seed); err != nil {
		t.Fatalf("seeding cart failed: %v", err)
	}

	if err := ClearStaleCart(bindings, 14*24*time.Hour)(); err != nil {
		t.Fatalf("ClearStaleCart failed: %v", err)
	}

	kept := bindings.Cart.Load(ctx)
	if len(kept) != 2 {
		t.Fatalf("kept %d items, want 2", len(kept))
	}
	if kept[0].ID != "fresh" || kept[1].ID != "untimed" {
		t.Errorf("kept = %+v", kept)
	}
}
