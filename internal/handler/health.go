// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/ocrm-go/internal/version"
)

// Health reports liveness and the build version.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSONSuccess(w, map[string]any{
		"status":  "ok",
		"version": version.Version,
	})
}
