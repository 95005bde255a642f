// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Access levels, in decreasing privilege order.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// TeamMember represents a dashboard user. Credentials are stored as an
// argon2id hash; the plaintext password field of the legacy data format is
// accepted on read but re-hashed before the record is ever written back.
type TeamMember struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Age          int    `json:"age,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Access       string `json:"access"`
}

// UnmarshalJSON tolerates legacy field names ("mail" for email,
// "username"/"fullName" for name, "pass"/"password" for the credential).
// A plaintext credential surfaces in PasswordHash only when no hash is
// present; callers must detect and re-hash it (see auth.IsHash).
func (m *TeamMember) UnmarshalJSON(data []byte) error {
	type alias TeamMember
	aux := struct {
		*alias
		Mail     string `json:"mail"`
		Username string `json:"username"`
		FullName string `json:"fullName"`
		Pass     string `json:"pass"`
		Password string `json:"password"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if m.Email == "" {
		m.Email = aux.Mail
	}
	if m.Name == "" {
		m.Name = aux.Username
	}
	if m.Name == "" {
		m.Name = aux.FullName
	}
	if m.PasswordHash == "" {
		m.PasswordHash = aux.Password
	}
	if m.PasswordHash == "" {
		m.PasswordHash = aux.Pass
	}
	return nil
}

// RecordID returns the team member identifier.
func (m TeamMember) RecordID() string { return m.ID }

// IsAdmin returns true if the member has the admin access level.
func (m TeamMember) IsAdmin() bool { return m.Access == RoleAdmin }

// Validate checks required fields and the access level.
func (m TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(m.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	switch m.Access {
	case RoleAdmin, RoleManager, RoleUser:
	default:
		return fmt.Errorf("%w: unknown access level %q", ErrValidation, m.Access)
	}
	return nil
}

// CurrentUser mirrors the signed-in team member plus the logged-in flag.
// It is stored under the current-user key so other instances can observe
// who is signed in; the HTTP session remains the authority within one
// instance.
type CurrentUser struct {
	User     TeamMember `json:"user"`
	LoggedIn bool       `json:"loggedIn"`
}

// RoleLevel returns a numeric level for the role hierarchy.
// Higher level = more permissions. Unknown roles have no access.
func RoleLevel(role string) int {
	switch role {
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}
