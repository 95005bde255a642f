// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"fmt"
	"math"
	"strings"
)

// Invoice statuses.
const (
	InvoiceStatusPending = "Pending"
	InvoiceStatusPaid    = "Paid"
	InvoiceStatusOverdue = "Overdue"
)

// Invoice represents a billing record. Cost and agency fee are stored;
// the total is derived on read and never persisted.
type Invoice struct {
	ID         string  `json:"_id"`
	ClientName string  `json:"name"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email"`
	Cost       float64 `json:"cost"`
	AgencyFee  float64 `json:"agencyFee,omitempty"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
}

// RecordID returns the invoice identifier.
func (i Invoice) RecordID() string { return i.ID }

// TotalCost returns cost plus agency fee, rounded to 2 decimal places
// for currency display.
func (i Invoice) TotalCost() float64 {
	return math.Round((i.Cost+i.AgencyFee)*100) / 100
}

// Validate checks required fields and enum values.
func (i Invoice) Validate() error {
	if strings.TrimSpace(i.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrValidation)
	}
	if i.Cost < 0 || i.AgencyFee < 0 {
		return fmt.Errorf("%w: cost must not be negative", ErrValidation)
	}
	switch i.Status {
	case "", InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
	default:
		return fmt.Errorf("%w: unknown invoice status %q", ErrValidation, i.Status)
	}
	return nil
}
