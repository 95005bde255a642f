// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/mileusna/useragent"

	"github.com/olegiv/ocrm-go/internal/auth"
	"github.com/olegiv/ocrm-go/internal/middleware"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/store"
	"github.com/olegiv/ocrm-go/internal/view"
)

// AuthHandler moves the session gate between its two states: anonymous
// and authenticated with a role. Credentials are checked against the
// team-members collection only; no unrelated UI state participates in
// the decision.
type AuthHandler struct {
	sessions *scs.SessionManager
	team     *view.Binding[model.TeamMember]
	current  *store.Value[model.CurrentUser]
	protect  *middleware.LoginProtection
}

// NewAuthHandler creates the login/logout handler.
func NewAuthHandler(sm *scs.SessionManager, team *view.Binding[model.TeamMember],
	current *store.Value[model.CurrentUser], protect *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		sessions: sm,
		team:     team,
		current:  current,
		protect:  protect,
	}
}

// loginRequest is the login form payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a team member and establishes the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	if locked, remaining := h.protect.IsAccountLocked(email); locked {
		slog.Warn("login attempt on locked account", "email", email, "remaining", remaining)
		writeJSONError(w, http.StatusTooManyRequests, "account temporarily locked")
		return
	}

	member, ok := h.findMember(r.Context(), email)
	if !ok || !h.verify(r.Context(), member, req.Password) {
		h.protect.RecordFailedAttempt(email)
		h.auditLogin(r, email, false)
		writeJSONError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.protect.RecordSuccessfulLogin(email)

	// Rotate the session token on privilege change
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("renewing session token failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionKeyUserID, member.ID)

	// Mirror the signed-in member for other instances; the hash stays out
	public := member
	public.PasswordHash = ""
	if err := h.current.Set(r.Context(), model.CurrentUser{User: public, LoggedIn: true}); err != nil {
		slog.Warn("storing current user failed", "error", err)
	}

	h.auditLogin(r, email, true)
	writeJSONSuccess(w, map[string]any{"user": public})
}

// Logout destroys the session and clears the current-user record.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("destroying session failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := h.current.Clear(r.Context()); err != nil {
		slog.Warn("clearing current user failed", "error", err)
	}
	writeJSONSuccess(w, nil)
}

// Me returns the signed-in member.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	member := middleware.GetUser(r)
	if member == nil {
		writeJSONError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	public := *member
	public.PasswordHash = ""
	writeJSONSuccess(w, map[string]any{"user": public})
}

// findMember looks a member up by email, case-insensitively.
func (h *AuthHandler) findMember(ctx context.Context, email string) (model.TeamMember, bool) {
	for _, m := range h.team.Load(ctx) {
		if strings.EqualFold(m.Email, email) {
			return m, true
		}
	}
	return model.TeamMember{}, false
}

// verify checks the password. Legacy records still carrying a plaintext
// credential are verified directly and upgraded to an argon2id hash on
// the spot, so the plaintext disappears on first successful login.
func (h *AuthHandler) verify(ctx context.Context, member model.TeamMember, password string) bool {
	if auth.IsHash(member.PasswordHash) {
		ok, err := auth.CheckPassword(password, member.PasswordHash)
		if err != nil {
			slog.Warn("password verification failed", "error", err)
			return false
		}
		return ok
	}

	// Legacy plaintext credential
	if member.PasswordHash == "" || member.PasswordHash != password {
		return false
	}

	patch, err := json.Marshal(map[string]string{"passwordHash": password})
	if err == nil {
		// The binding's prepare hook hashes anything that is not a hash
		if _, err := h.team.Update(ctx, member.ID, patch); err != nil {
			slog.Warn("upgrading legacy credential failed", "user_id", member.ID, "error", err)
		} else {
			slog.Info("upgraded legacy plaintext credential", "user_id", member.ID)
		}
	}
	return true
}

// auditLogin emits an auth event with the parsed user agent.
func (h *AuthHandler) auditLogin(r *http.Request, email string, success bool) {
	ua := useragent.Parse(r.UserAgent())

	if success {
		slog.Info("login succeeded",
			"category", model.EventCategoryAuth,
			"email", email,
			"browser", ua.Name,
			"os", ua.OS,
		)
		return
	}
	slog.Warn("login failed",
		"category", model.EventCategoryAuth,
		"email", email,
		"browser", ua.Name,
		"os", ua.OS,
		"remote_addr", r.RemoteAddr,
	)
}
