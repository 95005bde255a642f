// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ocrm-go/internal/auth"
	"github.com/olegiv/ocrm-go/internal/kv"
)

func TestSeedTeam_PasswordIsHashed(t *testing.T) {
	team := SeedTeam()
	require.Len(t, team, 1)

	admin := team[0]
	assert.Equal(t, DefaultAdminEmail, admin.Email)
	assert.True(t, admin.IsAdmin())
	assert.True(t, auth.IsHash(admin.PasswordHash), "seed must store a hash, not plaintext")

	ok, err := auth.CheckPassword(DefaultAdminPassword, admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNew_SeedsOnFirstRead(t *testing.T) {
	st := New(kv.NewMemory())
	ctx := context.Background()

	contacts := st.Contacts.Read(ctx)
	assert.Len(t, contacts, 3)
	for _, c := range contacts {
		assert.NotEmpty(t, c.ID)
	}

	invoices := st.Invoices.Read(ctx)
	assert.Len(t, invoices, 3)

	products := st.Products.Read(ctx)
	assert.Len(t, products, 2)

	// Cart and events start empty
	assert.Empty(t, st.Cart.Read(ctx))
	assert.Empty(t, st.Events.Read(ctx))
}

func TestNew_SeedIsStable(t *testing.T) {
	st := New(kv.NewMemory())
	ctx := context.Background()

	first := st.Contacts.Read(ctx)
	second := st.Contacts.Read(ctx)
	assert.Equal(t, first, second, "repeat reads must not re-seed with fresh ids")
}
