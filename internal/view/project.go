// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ProjectParams selects, orders and pages a loaded collection.
// The zero value projects the list unchanged.
type ProjectParams struct {
	Filter  string // substring match across all stringified fields
	SortKey string // JSON field name to sort by
	SortDir string // SortAsc (default) or SortDesc
	Page    int    // 1-based; 0 disables pagination
	PerPage int    // 0 disables pagination
}

// projected pairs a record with its flattened JSON fields so filter and
// sort stringify each record once.
type projected[T any] struct {
	rec    T
	fields map[string]any
}

// Project derives a filtered, sorted, paginated view of the list. It is
// pure: the input list is never modified, storage is never touched, and
// identical inputs always yield identical output. Sorting is stable, so
// records with equal sort keys keep their relative order.
func Project[T any](list []T, p ProjectParams) []T {
	rows := make([]projected[T], 0, len(list))
	for _, rec := range list {
		rows = append(rows, projected[T]{rec: rec, fields: fieldsOf(rec)})
	}

	if p.Filter != "" {
		needle := strings.ToLower(p.Filter)
		matched := rows[:0:0]
		for _, row := range rows {
			if rowMatches(row.fields, needle) {
				matched = append(matched, row)
			}
		}
		rows = matched
	}

	if p.SortKey != "" {
		desc := p.SortDir == SortDesc
		collator := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i].fields[p.SortKey], rows[j].fields[p.SortKey]
			if desc {
				a, b = b, a
			}
			return fieldLess(collator, a, b)
		})
	}

	if p.Page > 0 && p.PerPage > 0 {
		start := (p.Page - 1) * p.PerPage
		if start >= len(rows) {
			rows = nil
		} else {
			end := start + p.PerPage
			if end > len(rows) {
				end = len(rows)
			}
			rows = rows[start:end]
		}
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.rec)
	}
	return out
}

// fieldsOf flattens a record to its JSON field map. A record that cannot
// be marshaled projects as an empty map rather than failing the call.
func fieldsOf[T any](rec T) map[string]any {
	data, err := json.Marshal(rec)
	if err != nil {
		return map[string]any{}
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return map[string]any{}
	}
	return fields
}

// rowMatches reports whether any stringified field contains the needle.
func rowMatches(fields map[string]any, needle string) bool {
	for _, value := range fields {
		if strings.Contains(strings.ToLower(stringify(value)), needle) {
			return true
		}
	}
	return false
}

// stringify renders a JSON leaf the way it displays: numbers without a
// trailing fraction, booleans as true/false.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// fieldLess compares two field values: numbers numerically, everything
// else with locale-aware collation. Missing values sort first.
func fieldLess(collator *collate.Collator, a, b any) bool {
	af, aNum := a.(float64)
	bf, bNum := b.(float64)
	if aNum && bNum {
		return af < bf
	}
	return collator.CompareString(stringify(a), stringify(b)) < 0
}
