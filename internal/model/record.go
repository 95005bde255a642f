// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the records held in named collections: contacts,
// invoices, team members, products and cart items. Records are flat; every
// derived value (invoice total, revenue, counts) is computed on read and
// never persisted.
package model

import "errors"

// ErrValidation marks user-correctable input errors. Handlers report these
// inline at the point of submission; no write is attempted.
var ErrValidation = errors.New("validation failed")

// Collection keys. Each collection is stored as one serialized list under
// its key.
const (
	CollectionContacts = "contacts"
	CollectionInvoices = "invoices"
	CollectionTeam     = "team-members"
	CollectionProducts = "products"
	CollectionCart     = "cart"
	CollectionEvents   = "events"
)

// Single-record keys.
const (
	KeyCurrentUser = "current-user"
	KeyLastOrder   = "last-order"
	KeyTheme       = "theme"
)
