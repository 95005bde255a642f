// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/ocrm-go/internal/catalog"
	"github.com/olegiv/ocrm-go/internal/model"
)

// CatalogHandler proxies the remote product catalog. A remote failure
// degrades to an empty list; it never disturbs the local collections.
type CatalogHandler struct {
	client *catalog.Client
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(client *catalog.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

// List fetches the remote catalog.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.Fetch(r.Context())
	if err != nil {
		slog.Warn("fetching remote catalog failed", "error", err)
		products = []model.Product{}
	}
	writeJSONSuccess(w, map[string]any{"items": products})
}
