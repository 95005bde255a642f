// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestContact_UnmarshalLegacyFields(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantName  string
		wantEmail string
	}{
		{
			name:      "canonical fields",
			payload:   `{"_id":"1","name":"Jon Snow","email":"jon@example.com"}`,
			wantName:  "Jon Snow",
			wantEmail: "jon@example.com",
		},
		{
			name:      "legacy mail field",
			payload:   `{"_id":"1","name":"Jon","mail":"jon@example.com"}`,
			wantName:  "Jon",
			wantEmail: "jon@example.com",
		},
		{
			name:      "legacy fullName field",
			payload:   `{"_id":"1","fullName":"Jon Snow","email":"jon@example.com"}`,
			wantName:  "Jon Snow",
			wantEmail: "jon@example.com",
		},
		{
			name:      "legacy username field",
			payload:   `{"_id":"1","username":"jonsnow","email":"jon@example.com"}`,
			wantName:  "jonsnow",
			wantEmail: "jon@example.com",
		},
		{
			name:      "canonical wins over legacy",
			payload:   `{"_id":"1","name":"Jon","fullName":"Other","email":"jon@example.com","mail":"other@example.com"}`,
			wantName:  "Jon",
			wantEmail: "jon@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Contact
			if err := json.Unmarshal([]byte(tt.payload), &c); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if c.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", c.Name, tt.wantName)
			}
			if c.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", c.Email, tt.wantEmail)
			}
		})
	}
}

func TestContact_Validate(t *testing.T) {
	valid := Contact{Name: "Jon", Type: ContactTypeLead, Status: ContactStatusPending}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid contact rejected: %v", err)
	}

	noName := Contact{Type: ContactTypeLead}
	if err := noName.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name: got %v, want ErrValidation", err)
	}

	badType := Contact{Name: "Jon", Type: "VIP"}
	if err := badType.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown type: got %v, want ErrValidation", err)
	}

	badStatus := Contact{Name: "Jon", Status: "Maybe"}
	if err := badStatus.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown status: got %v, want ErrValidation", err)
	}
}
