// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling. The session gate has two
// states, anonymous and authenticated with a role, and every protected
// route is guarded by a minimum role.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/view"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyUser carries the loaded team member.
const ContextKeyUser ContextKey = "user"

// SessionKeyUserID stores the signed-in member's record id.
const SessionKeyUserID = "user_id"

// Auth creates middleware that requires authentication.
// Anonymous requests are redirected to the login route.
func Auth(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), SessionKeyUserID)
			if userID == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoadUser creates middleware that loads the current team member into the
// request context. A session pointing at a deleted member is destroyed.
// This should be used after Auth middleware.
func LoadUser(sm *scs.SessionManager, team *view.Binding[model.TeamMember]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetString(r.Context(), SessionKeyUserID)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			member, err := team.Get(r.Context(), userID)
			if err != nil {
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, member)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current team member from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.TeamMember {
	member, ok := r.Context().Value(ContextKeyUser).(model.TeamMember)
	if !ok {
		return nil
	}
	return &member
}

// RequireRole creates middleware that requires a minimum access level.
// Roles are hierarchical: admin > manager > user. For example,
// RequireRole(model.RoleManager) allows both admin and manager members.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := model.RoleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			member := GetUser(r)
			if member == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if model.RoleLevel(member.Access) < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", member.ID,
					"user_role", member.Access,
					"required_role", minRole,
				)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin creates middleware that requires the admin access level.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}
