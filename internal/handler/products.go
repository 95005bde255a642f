// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocrm-go/internal/imaging"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/render"
	"github.com/olegiv/ocrm-go/internal/view"
)

// ProductHandler extends the standard CRUD handlers with image processing
// on write and markdown rendering on read.
type ProductHandler struct {
	*Resource[model.Product]
	binding *view.Binding[model.Product]
}

// NewProductHandler creates the product handlers.
func NewProductHandler(binding *view.Binding[model.Product]) *ProductHandler {
	return &ProductHandler{
		Resource: NewResource(binding),
		binding:  binding,
	}
}

// Get returns a product with its description rendered to HTML.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.binding.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMutationError(w, err)
		return
	}

	descriptionHTML, err := render.Markdown(product.Description)
	if err != nil {
		slog.Warn("rendering product description failed", "product_id", product.ID, "error", err)
		descriptionHTML = ""
	}

	writeJSONSuccess(w, map[string]any{
		"item":            product,
		"descriptionHtml": descriptionHTML,
	})
}

// Create adds a product, downscaling and re-encoding any uploaded image
// before it reaches storage.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := decodeBody(r, &product); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if product.Image != "" {
		processed, err := imaging.ProcessBase64(product.Image)
		if err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, "image could not be processed")
			return
		}
		product.Image = processed
	}

	created, err := h.binding.Add(r.Context(), product)
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"item": created})
}

// Update merges a patch onto a product, processing a replaced image first.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch, err := processImagePatch(body)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "image could not be processed")
		return
	}

	updated, err := h.binding.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"item": updated})
}

// processImagePatch rewrites the image field of a patch through the
// image pipeline. Patches without an image pass through untouched.
func processImagePatch(body []byte) (json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}

	raw, ok := fields["image"]
	if !ok {
		return body, nil
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, err
	}
	if encoded == "" {
		return body, nil
	}

	processed, err := imaging.ProcessBase64(encoded)
	if err != nil {
		return nil, err
	}
	fields["image"], err = json.Marshal(processed)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}
