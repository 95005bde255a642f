// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ocrm-go/internal/store"
)

// Theme names.
const (
	ThemeLight   = "light"
	ThemeDark    = "dark"
	defaultTheme = ThemeLight
)

// ThemeHandler persists the UI theme preference so every instance renders
// the same way.
type ThemeHandler struct {
	theme *store.Value[string]
}

// NewThemeHandler creates the theme handlers.
func NewThemeHandler(theme *store.Value[string]) *ThemeHandler {
	return &ThemeHandler{theme: theme}
}

// Get returns the stored theme, falling back to the default.
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	theme, ok := h.theme.Get(r.Context())
	if !ok || theme == "" {
		theme = defaultTheme
	}
	writeJSONSuccess(w, map[string]any{"theme": theme})
}

// Put stores the theme preference.
func (h *ThemeHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Theme != ThemeLight && req.Theme != ThemeDark {
		writeJSONError(w, http.StatusUnprocessableEntity, "unknown theme")
		return
	}
	if err := h.theme.Set(r.Context(), req.Theme); err != nil {
		writeMutationError(w, err)
		return
	}
	writeJSONSuccess(w, map[string]any{"theme": req.Theme})
}
