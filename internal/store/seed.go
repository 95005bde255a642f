// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"log/slog"

	"github.com/olegiv/ocrm-go/internal/auth"
	"github.com/olegiv/ocrm-go/internal/id"
	"github.com/olegiv/ocrm-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// SeedTeam returns the default team roster with the admin account.
// The admin password is hashed at seed time; plaintext never hits storage.
func SeedTeam() []model.TeamMember {
	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		slog.Error("hashing default admin password failed", "error", err)
		return []model.TeamMember{}
	}

	slog.Info("seeding default admin user", "email", DefaultAdminEmail)
	return []model.TeamMember{
		{
			ID:           id.New(),
			Name:         DefaultAdminName,
			Email:        DefaultAdminEmail,
			PasswordHash: passwordHash,
			Access:       model.RoleAdmin,
		},
	}
}

// SeedContacts returns example contacts shown on a fresh install.
func SeedContacts() []model.Contact {
	return []model.Contact{
		{
			ID:         id.New(),
			Name:       "Jon Snow",
			Mobile:     "(665) 121-5454",
			Email:      "jonsnow@gmail.com",
			Type:       model.ContactTypeLead,
			Address:    "0912 Won Street, Alabama, SY 10001",
			PostalCode: "10001",
			Status:     model.ContactStatusPending,
		},
		{
			ID:         id.New(),
			Name:       "Cersei Lannister",
			Mobile:     "(421) 314-2288",
			Email:      "cerseilannister@gmail.com",
			Type:       model.ContactTypeCustomer,
			Address:    "1234 Main Street, New York, NY 10001",
			PostalCode: "13151",
			Status:     model.ContactStatusApproved,
		},
		{
			ID:         id.New(),
			Name:       "Jaime Lannister",
			Mobile:     "(422) 982-6739",
			Email:      "jaimelannister@gmail.com",
			Type:       model.ContactTypeInterested,
			Address:    "3333 Want Blvd, Estanza, NAY 42125",
			PostalCode: "87281",
			Status:     model.ContactStatusRejected,
		},
	}
}

// SeedInvoices returns example invoices shown on a fresh install.
func SeedInvoices() []model.Invoice {
	return []model.Invoice{
		{
			ID:         id.New(),
			ClientName: "Jon Snow",
			Phone:      "(665) 121-5454",
			Email:      "jonsnow@gmail.com",
			Cost:       21.24,
			AgencyFee:  2.12,
			Date:       "2022-03-12",
			Status:     model.InvoiceStatusPending,
		},
		{
			ID:         id.New(),
			ClientName: "Cersei Lannister",
			Phone:      "(421) 314-2288",
			Email:      "cerseilannister@gmail.com",
			Cost:       1.24,
			Date:       "2022-06-15",
			Status:     model.InvoiceStatusPaid,
		},
		{
			ID:         id.New(),
			ClientName: "Jaime Lannister",
			Phone:      "(422) 982-6739",
			Email:      "jaimelannister@gmail.com",
			Cost:       11.24,
			AgencyFee:  1.0,
			Date:       "2022-05-02",
			Status:     model.InvoiceStatusOverdue,
		},
	}
}

// SeedProducts returns the starter product catalog.
func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:          id.New(),
			Name:        "Wireless Headphones",
			Slug:        "wireless-headphones",
			Price:       99.99,
			Description: "Over-ear wireless headphones with noise cancellation.",
		},
		{
			ID:          id.New(),
			Name:        "Smart Watch",
			Slug:        "smart-watch",
			Price:       149.50,
			Description: "Fitness tracking watch with a week of battery life.",
		},
	}
}
