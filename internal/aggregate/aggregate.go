// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package aggregate derives summary statistics from loaded collections.
// Every function is pure and recomputed on each call; nothing here is
// cached or persisted. Collections are browser-storage scale, so a full
// pass per render is fine.
package aggregate

import (
	"math"

	"github.com/olegiv/ocrm-go/internal/model"
)

// Round2 rounds to 2 decimal places for currency display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Count returns the number of records.
func Count[T any](list []T) int {
	return len(list)
}

// Sum adds up a numeric field across the list, rounded to 2 decimals.
// The result is invariant under record reordering.
func Sum[T any](list []T, field func(T) float64) float64 {
	var total float64
	for _, rec := range list {
		total += field(rec)
	}
	return Round2(total)
}

// CountWhere returns the number of records matching the predicate.
func CountWhere[T any](list []T, pred func(T) bool) int {
	n := 0
	for _, rec := range list {
		if pred(rec) {
			n++
		}
	}
	return n
}

// InvoiceRevenue sums cost plus agency fee across invoices.
func InvoiceRevenue(invoices []model.Invoice) float64 {
	return Sum(invoices, func(i model.Invoice) float64 { return i.TotalCost() })
}

// CartTotal sums line totals across cart items.
func CartTotal(items []model.CartItem) float64 {
	return Sum(items, func(c model.CartItem) float64 { return c.LineTotal() })
}

// DashboardStats holds the summary numbers shown on the dashboard cards.
type DashboardStats struct {
	Contacts        int     `json:"contacts"`
	Invoices        int     `json:"invoices"`
	PendingInvoices int     `json:"pendingInvoices"`
	Revenue         float64 `json:"revenue"`
	TeamMembers     int     `json:"teamMembers"`
	Products        int     `json:"products"`
}

// Dashboard computes the dashboard summary from loaded collections.
func Dashboard(contacts []model.Contact, invoices []model.Invoice,
	team []model.TeamMember, products []model.Product) DashboardStats {
	return DashboardStats{
		Contacts: Count(contacts),
		Invoices: Count(invoices),
		PendingInvoices: CountWhere(invoices, func(i model.Invoice) bool {
			return i.Status == model.InvoiceStatusPending
		}),
		Revenue:     InvoiceRevenue(invoices),
		TeamMembers: Count(team),
		Products:    Count(products),
	}
}
