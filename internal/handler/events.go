// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/view"
)

// EventHandler lists the audit log. Events are append-only from the
// application's point of view; only the retention job removes them.
type EventHandler struct {
	binding *view.Binding[model.Event]
}

// NewEventHandler creates the audit log handler.
func NewEventHandler(binding *view.Binding[model.Event]) *EventHandler {
	return &EventHandler{binding: binding}
}

// List returns audit events, newest first unless the query says otherwise.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	params := projectParams(r)
	if params.SortKey == "" {
		params.SortKey = "createdAt"
		params.SortDir = view.SortDesc
	}

	list := h.binding.Load(r.Context())
	writeJSONSuccess(w, map[string]any{
		"items": view.Project(list, params),
		"total": len(list),
	})
}
