// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/ocrm-go/internal/view"
)

// Pagination limits.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// projectParams reads filter, sort and pagination query parameters:
// q, sort, dir, page, per_page.
func projectParams(r *http.Request) view.ProjectParams {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	dir := q.Get("dir")
	if dir != view.SortDesc {
		dir = view.SortAsc
	}

	return view.ProjectParams{
		Filter:  q.Get("q"),
		SortKey: q.Get("sort"),
		SortDir: dir,
		Page:    page,
		PerPage: perPage,
	}
}
