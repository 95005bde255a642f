// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"github.com/olegiv/ocrm-go/internal/kv"
	"github.com/olegiv/ocrm-go/internal/model"
)

// Store bundles every collection and single-record key over one engine.
// Collections are independent namespaces; nothing enforces referential
// integrity between them (an invoice's client need not match a contact).
type Store struct {
	Contacts *Collection[model.Contact]
	Invoices *Collection[model.Invoice]
	Team     *Collection[model.TeamMember]
	Products *Collection[model.Product]
	Cart     *Collection[model.CartItem]
	Events   *Collection[model.Event]

	CurrentUser *Value[model.CurrentUser]
	LastOrder   *Value[model.Order]
	Theme       *Value[string]

	engine kv.KV
}

// New creates a store over the given engine with default seeds wired in.
func New(engine kv.KV) *Store {
	return &Store{
		Contacts: NewCollection[model.Contact](engine, model.CollectionContacts).WithSeed(SeedContacts),
		Invoices: NewCollection[model.Invoice](engine, model.CollectionInvoices).WithSeed(SeedInvoices),
		Team:     NewCollection[model.TeamMember](engine, model.CollectionTeam).WithSeed(SeedTeam),
		Products: NewCollection[model.Product](engine, model.CollectionProducts).WithSeed(SeedProducts),
		Cart:     NewCollection[model.CartItem](engine, model.CollectionCart),
		Events:   NewCollection[model.Event](engine, model.CollectionEvents),

		CurrentUser: NewValue[model.CurrentUser](engine, model.KeyCurrentUser),
		LastOrder:   NewValue[model.Order](engine, model.KeyLastOrder),
		Theme:       NewValue[string](engine, model.KeyTheme),

		engine: engine,
	}
}

// Engine returns the underlying key-value engine.
func (s *Store) Engine() kv.KV {
	return s.engine
}
