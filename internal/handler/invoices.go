// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocrm-go/internal/aggregate"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/view"
)

// InvoiceHandler extends the standard CRUD handlers with the revenue
// total shown above the invoice table. The total covers the whole
// collection, not the current page or filter.
type InvoiceHandler struct {
	*Resource[model.Invoice]
	binding *view.Binding[model.Invoice]
}

// NewInvoiceHandler creates the invoice handlers.
func NewInvoiceHandler(binding *view.Binding[model.Invoice]) *InvoiceHandler {
	return &InvoiceHandler{
		Resource: NewResource(binding),
		binding:  binding,
	}
}

// List returns invoices with per-record derived totals and the overall
// revenue figure.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	list := h.binding.Load(r.Context())
	items := view.Project(list, projectParams(r))

	rows := make([]map[string]any, 0, len(items))
	for _, inv := range items {
		rows = append(rows, invoiceRow(inv))
	}

	writeJSONSuccess(w, map[string]any{
		"items":   rows,
		"total":   len(list),
		"revenue": aggregate.InvoiceRevenue(list),
	})
}

// Get returns a single invoice with its derived total.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.binding.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"item": invoiceRow(inv)})
}

// invoiceRow flattens an invoice with its derived total for display.
func invoiceRow(inv model.Invoice) map[string]any {
	return map[string]any{
		"_id":       inv.ID,
		"name":      inv.ClientName,
		"phone":     inv.Phone,
		"email":     inv.Email,
		"cost":      inv.Cost,
		"agencyFee": inv.AgencyFee,
		"date":      inv.Date,
		"status":    inv.Status,
		"totalCost": inv.TotalCost(),
	}
}
