// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocrm-go/internal/view"
)

// Resource provides the standard CRUD handlers for one collection.
// Collection-specific handlers wrap it where a record needs extra work
// (image processing, checkout).
type Resource[T any] struct {
	binding *view.Binding[T]
}

// NewResource creates CRUD handlers over the given binding.
func NewResource[T any](binding *view.Binding[T]) *Resource[T] {
	return &Resource[T]{binding: binding}
}

// List loads the collection and applies filter/sort/pagination from the
// query string. The total reflects the unpaginated collection so clients
// can build pagers.
func (h *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	list := h.binding.Load(r.Context())
	items := view.Project(list, projectParams(r))

	writeJSONSuccess(w, map[string]any{
		"items": items,
		"total": len(list),
	})
}

// Get returns a single record by id.
func (h *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.binding.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"item": rec})
}

// Create decodes a record from the body and adds it to the collection.
func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	var rec T
	if err := decodeBody(r, &rec); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := h.binding.Add(r.Context(), rec)
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"item": created})
}

// Update treats the body as a patch and merges it onto the stored record.
func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	patch, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(patch) {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.binding.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"item": updated})
}

// Delete removes a record by id.
func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.binding.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, nil)
}
