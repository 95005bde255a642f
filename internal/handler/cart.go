// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/ocrm-go/internal/aggregate"
	"github.com/olegiv/ocrm-go/internal/id"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/store"
	"github.com/olegiv/ocrm-go/internal/view"
)

// CartHandler manages the shopping cart and checkout. Checkout is the one
// operation that touches three keys: it raises an invoice, records the
// last order, then clears the cart.
type CartHandler struct {
	cart      *view.Binding[model.CartItem]
	invoices  *view.Binding[model.Invoice]
	lastOrder *store.Value[model.Order]
}

// NewCartHandler creates the cart handlers.
func NewCartHandler(cart *view.Binding[model.CartItem], invoices *view.Binding[model.Invoice],
	lastOrder *store.Value[model.Order]) *CartHandler {
	return &CartHandler{
		cart:      cart,
		invoices:  invoices,
		lastOrder: lastOrder,
	}
}

// List returns the cart contents with a running total.
func (h *CartHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.cart.Load(r.Context())
	writeJSONSuccess(w, map[string]any{
		"items": items,
		"total": aggregate.CartTotal(items),
	})
}

// Add puts a product in the cart. Adding a product that is already in the
// cart bumps its quantity instead of duplicating the line.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var item model.CartItem
	if err := decodeBody(r, &item); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}

	for _, line := range h.cart.Load(r.Context()) {
		if !sameProduct(line, item) {
			continue
		}
		// Merging goes through Update so the quantity sum is validated
		// like any other write; a bump below 1 is rejected, not stored.
		patch, err := json.Marshal(map[string]int{"quantity": line.Quantity + item.Quantity})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "internal error")
			return
		}
		merged, err := h.cart.Update(r.Context(), line.ID, patch)
		if err != nil {
			writeMutationError(w, err)
			return
		}
		writeJSONSuccess(w, map[string]any{"item": merged})
		return
	}

	item.AddedAt = time.Now().UTC()
	created, err := h.cart.Add(r.Context(), item)
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"item": created})
}

// sameProduct reports whether two cart lines refer to the same product.
// Slugs are authoritative when either side carries one; the name is only
// a fallback for lines that never had a slug.
func sameProduct(a, b model.CartItem) bool {
	if a.Slug != "" || b.Slug != "" {
		return a.Slug == b.Slug
	}
	return a.Name == b.Name
}

// Remove takes a line out of the cart.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	NewResource(h.cart).Delete(w, r)
}

// checkoutRequest is the customer detail form submitted at checkout.
type checkoutRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Checkout turns the cart into a pending invoice, stores it as the last
// order, and empties the cart. An empty cart cannot be checked out.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "customer name is required")
		return
	}

	items := h.cart.Load(r.Context())
	if len(items) == 0 {
		writeJSONError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	total := aggregate.CartTotal(items)
	invoice, err := h.invoices.Add(r.Context(), model.Invoice{
		ClientName: req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Cost:       total,
		Date:       time.Now().Format("2006-01-02"),
		Status:     model.InvoiceStatusPending,
	})
	if err != nil {
		writeMutationError(w, err)
		return
	}

	order := model.Order{
		ID:        id.New(),
		Items:     items,
		Total:     total,
		PlacedAt:  time.Now().UTC().Format(time.RFC3339),
		InvoiceID: invoice.ID,
	}
	if err := h.lastOrder.Set(r.Context(), order); err != nil {
		slog.Warn("storing last order failed", "error", err)
	}

	if err := h.cart.Replace(r.Context(), []model.CartItem{}); err != nil {
		slog.Warn("clearing cart after checkout failed", "error", err)
	}

	slog.Info("order placed",
		"category", model.EventCategoryRecord,
		"order_id", order.ID,
		"invoice_id", invoice.ID,
		"total", total,
	)
	writeJSONSuccess(w, map[string]any{"order": order})
}

// LastOrder returns the most recent order, if any.
func (h *CartHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.lastOrder.Get(r.Context())
	if !ok {
		writeJSONError(w, http.StatusNotFound, "no order placed yet")
		return
	}
	writeJSONSuccess(w, map[string]any{"order": order})
}
