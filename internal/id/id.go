// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package id assigns record identifiers. The legacy data used a mix of
// timestamp and max+1 strategies; both are replaced by UUIDs, which stay
// unique under concurrent creation. Identifiers are opaque strings and
// never change once assigned.
package id

import "github.com/google/uuid"

// New returns a fresh record identifier.
func New() string {
	return uuid.NewString()
}
