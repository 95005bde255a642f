// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Contact types.
const (
	ContactTypeLead       = "Lead"
	ContactTypeCustomer   = "Customer"
	ContactTypeInterested = "Interested"
	ContactTypeOther      = "Other"
)

// Contact statuses.
const (
	ContactStatusPending  = "Pending"
	ContactStatusApproved = "Approved"
	ContactStatusRejected = "Rejected"
)

// Contact represents a CRM contact record.
type Contact struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	Address     string `json:"address"`
	PostalCode  string `json:"postalCode"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Status      string `json:"status"`
}

// UnmarshalJSON tolerates legacy field names used by externally-seeded data
// ("mail" for email, "fullName"/"username" for name). Canonical fields win
// when both are present.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type alias Contact
	aux := struct {
		*alias
		Mail     string `json:"mail"`
		FullName string `json:"fullName"`
		Username string `json:"username"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if c.Email == "" {
		c.Email = aux.Mail
	}
	if c.Name == "" {
		c.Name = aux.FullName
	}
	if c.Name == "" {
		c.Name = aux.Username
	}
	return nil
}

// RecordID returns the contact identifier.
func (c Contact) RecordID() string { return c.ID }

// Validate checks required fields and enum values.
func (c Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	switch c.Type {
	case "", ContactTypeLead, ContactTypeCustomer, ContactTypeInterested, ContactTypeOther:
	default:
		return fmt.Errorf("%w: unknown contact type %q", ErrValidation, c.Type)
	}
	switch c.Status {
	case "", ContactStatusPending, ContactStatusApproved, ContactStatusRejected:
	default:
		return fmt.Errorf("%w: unknown contact status %q", ErrValidation, c.Status)
	}
	return nil
}
