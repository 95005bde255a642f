// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLite_SetGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Set(ctx, "contacts", []byte(`[{"_id":"1","name":"Jon"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := db.Get(ctx, "contacts")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `[{"_id":"1","name":"Jon"}]` {
		t.Errorf("got %q", got)
	}
}

func TestSQLite_Upsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_ = db.Set(ctx, "theme", []byte(`"light"`))
	if err := db.Set(ctx, "theme", []byte(`"dark"`)); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	got, err := db.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `"dark"` {
		t.Errorf("got %q, want %q", got, `"dark"`)
	}
}

func TestSQLite_GetMissing(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Get(context.Background(), "nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSQLite_DeleteHas(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_ = db.Set(ctx, "cart", []byte("[]"))

	ok, err := db.Has(ctx, "cart")
	if err != nil || !ok {
		t.Fatalf("Has = (%v, %v), want (true, nil)", ok, err)
	}

	if err := db.Delete(ctx, "cart"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	ok, err = db.Has(ctx, "cart")
	if err != nil || ok {
		t.Errorf("Has after Delete = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestSQLite_Keys(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_ = db.Set(ctx, "contacts", []byte("[]"))
	_ = db.Set(ctx, "invoices", []byte("[]"))
	_ = db.Set(ctx, "products", []byte("[]"))

	keys, err := db.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 3 {
		t.Errorf("got %d keys, want 3", len(keys))
	}
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	_ = db.Set(ctx, "theme", []byte(`"dark"`))
	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = db2.Close() }()

	got, err := db2.Get(ctx, "theme")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if string(got) != `"dark"` {
		t.Errorf("got %q after reopen", got)
	}
}
