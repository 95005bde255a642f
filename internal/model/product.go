// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// descriptionSanitizer strips unsafe HTML from user-entered product
// descriptions before they reach storage.
var descriptionSanitizer = bluemonday.UGCPolicy()

// Product represents a storefront product. Image holds a base64-encoded
// thumbnail; full-size uploads are downscaled before storage.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// RecordID returns the product identifier.
func (p Product) RecordID() string { return p.ID }

// Sanitize strips unsafe HTML from the description in place.
func (p *Product) Sanitize() {
	p.Description = descriptionSanitizer.Sanitize(p.Description)
}

// Validate checks required fields.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return nil
}

// CartItem is a product in the cart with a quantity. AddedAt lets the
// scheduler clear abandoned carts.
type CartItem struct {
	Product
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt,omitempty"`
}

// Validate checks the product fields and that quantity is at least 1.
func (c CartItem) Validate() error {
	if err := c.Product.Validate(); err != nil {
		return err
	}
	if c.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	return nil
}

// LineTotal returns price times quantity.
func (c CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}

// Order is the "last order" record written at checkout.
type Order struct {
	ID        string     `json:"_id"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	PlacedAt  string     `json:"placedAt"`
	InvoiceID string     `json:"invoiceId,omitempty"`
}
