// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ocrm-go/internal/aggregate"
	"github.com/olegiv/ocrm-go/internal/view"
)

// DashboardHandler serves the summary cards. Everything is recomputed
// from the collections on each request.
type DashboardHandler struct {
	bindings *view.Bindings
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(bindings *view.Bindings) *DashboardHandler {
	return &DashboardHandler{bindings: bindings}
}

// Stats returns the dashboard summary.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats := aggregate.Dashboard(
		h.bindings.Contacts.Load(ctx),
		h.bindings.Invoices.Load(ctx),
		h.bindings.Team.Load(ctx),
		h.bindings.Products.Load(ctx),
	)
	writeJSONSuccess(w, map[string]any{"stats": stats})
}
