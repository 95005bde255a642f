// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"fmt"

	"github.com/olegiv/ocrm-go/internal/auth"
	"github.com/olegiv/ocrm-go/internal/bus"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/store"
	"github.com/olegiv/ocrm-go/internal/util"
)

// Bindings bundles one binding per collection, all sharing one store and
// one notifier.
type Bindings struct {
	Contacts *Binding[model.Contact]
	Invoices *Binding[model.Invoice]
	Team     *Binding[model.TeamMember]
	Products *Binding[model.Product]
	Cart     *Binding[model.CartItem]
	Events   *Binding[model.Event]
}

// New wires the per-collection bindings with their prepare hooks.
func New(st *store.Store, notifier bus.Notifier) *Bindings {
	return &Bindings{
		Contacts: NewBinding(st.Contacts, notifier,
			func(c model.Contact) string { return c.ID },
			func(c *model.Contact, id string) { c.ID = id },
		).WithPrepare(func(c *model.Contact) error {
			return c.Validate()
		}),

		Invoices: NewBinding(st.Invoices, notifier,
			func(i model.Invoice) string { return i.ID },
			func(i *model.Invoice, id string) { i.ID = id },
		).WithPrepare(func(i *model.Invoice) error {
			return i.Validate()
		}),

		Team: NewBinding(st.Team, notifier,
			func(m model.TeamMember) string { return m.ID },
			func(m *model.TeamMember, id string) { m.ID = id },
		).WithPrepare(prepareTeamMember),

		Products: NewBinding(st.Products, notifier,
			func(p model.Product) string { return p.ID },
			func(p *model.Product, id string) { p.ID = id },
		).WithPrepare(prepareProduct),

		Cart: NewBinding(st.Cart, notifier,
			func(c model.CartItem) string { return c.ID },
			func(c *model.CartItem, id string) { c.ID = id },
		).WithPrepare(func(c *model.CartItem) error {
			return c.Validate()
		}),

		Events: NewBinding(st.Events, notifier,
			func(e model.Event) string { return e.ID },
			func(e *model.Event, id string) { e.ID = id },
		),
	}
}

// prepareTeamMember validates the record and guarantees no plaintext
// credential is ever written. Legacy records carry plaintext in the
// credential field; anything that is not an argon2id hash is hashed here.
func prepareTeamMember(m *model.TeamMember) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.PasswordHash != "" && !auth.IsHash(m.PasswordHash) {
		hash, err := auth.HashPassword(m.PasswordHash)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		m.PasswordHash = hash
	}
	return nil
}

// prepareProduct sanitizes the description and derives a slug when absent.
func prepareProduct(p *model.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.Sanitize()
	if p.Slug == "" {
		p.Slug = util.Slugify(p.Name)
	}
	return nil
}
