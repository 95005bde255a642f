// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocrm-go/internal/auth"
	"github.com/olegiv/ocrm-go/internal/bus"
	"github.com/olegiv/ocrm-go/internal/kv"
	"github.com/olegiv/ocrm-go/internal/middleware"
	"github.com/olegiv/ocrm-go/internal/model"
	"github.com/olegiv/ocrm-go/internal/store"
	"github.com/olegiv/ocrm-go/internal/view"
)

type authFixture struct {
	router   *chi.Mux
	store    *store.Store
	bindings *view.Bindings
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	st := store.New(kv.NewMemory())
	bindings := view.New(st, bus.NewLocal())
	sm := scs.New() // in-memory session store

	h := NewAuthHandler(sm, bindings.Team, st.CurrentUser, middleware.NewLoginProtection())

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(sm))
		r.Use(middleware.LoadUser(sm, bindings.Team))
		r.Get("/me", h.Me)
	})

	return &authFixture{router: r, store: st, bindings: bindings}
}

// do sends a request, carrying over session cookies from a prior response.
func (f *authFixture) do(t *testing.T, method, target, body string, prior *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if prior != nil {
		for _, c := range prior.Result().Cookies() {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, http.MethodPost, "/login",
		`{"email":"admin@example.com","password":"changeme"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	user := body["user"].(map[string]any)
	if user["email"] != store.DefaultAdminEmail {
		t.Errorf("user email = %v", user["email"])
	}
	if hash, ok := user["passwordHash"]; ok && hash != "" {
		t.Error("credential hash leaked in login response")
	}

	// Current user is mirrored in the store for other instances
	current, ok := f.store.CurrentUser.Get(context.Background())
	if !ok || !current.LoggedIn {
		t.Errorf("current user = (%+v, %v)", current, ok)
	}
	if current.User.PasswordHash != "" {
		t.Error("credential hash stored in current-user record")
	}

	// The session works for protected routes
	me := f.do(t, http.MethodGet, "/me", "", rec)
	if me.Code != http.StatusOK {
		t.Errorf("/me status = %d after login", me.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, http.MethodPost, "/login",
		`{"email":"admin@example.com","password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, http.MethodPost, "/login",
		`{"email":"nobody@example.com","password":"changeme"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do(t, http.MethodPost, "/login",
		`{"email":"Admin@Example.COM","password":"changeme"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	f := newAuthFixture(t)

	for i := 0; i < 5; i++ {
		f.do(t, http.MethodPost, "/login",
			`{"email":"admin@example.com","password":"wrong"}`, nil)
	}

	rec := f.do(t, http.MethodPost, "/login",
		`{"email":"admin@example.com","password":"changeme"}`, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 while locked", rec.Code)
	}
}

func TestLogin_UpgradesLegacyPlaintext(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	// Write a legacy record straight to the collection, bypassing the
	// prepare hook that would hash it.
	team := f.store.Team.Read(ctx)
	team = append(team, model.TeamMember{
		ID:           "legacy-1",
		Name:         "Legacy User",
		Email:        "legacy@example.com",
		PasswordHash: "oldplain",
		Access:       model.RoleUser,
	})
	if err := f.store.Team.Write(ctx, team); err != nil {
		t.Fatalf("seeding legacy member: %v", err)
	}

	rec := f.do(t, http.MethodPost, "/login",
		`{"email":"legacy@example.com","password":"oldplain"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("legacy login status = %d: %s", rec.Code, rec.Body.String())
	}

	// The stored credential is now a hash that still verifies
	upgraded, err := f.bindings.Team.Get(ctx, "legacy-1")
	if err != nil {
		t.Fatalf("loading upgraded member: %v", err)
	}
	if !auth.IsHash(upgraded.PasswordHash) {
		t.Fatalf("credential still plaintext after login: %q", upgraded.PasswordHash)
	}
	ok, err := auth.CheckPassword("oldplain", upgraded.PasswordHash)
	if err != nil || !ok {
		t.Errorf("upgraded hash does not verify: (%v, %v)", ok, err)
	}
}

func TestLogout(t *testing.T) {
	f := newAuthFixture(t)

	login := f.do(t, http.MethodPost, "/login",
		`{"email":"admin@example.com","password":"changeme"}`, nil)
	if login.Code != http.StatusOK {
		t.Fatalf("login status = %d", login.Code)
	}

	logout := f.do(t, http.MethodPost, "/logout", "", login)
	if logout.Code != http.StatusOK {
		t.Fatalf("logout status = %d", logout.Code)
	}

	// The mirrored current user is gone
	if _, ok := f.store.CurrentUser.Get(context.Background()); ok {
		t.Error("current-user record survived logout")
	}

	// The session no longer opens protected routes
	me := f.do(t, http.MethodGet, "/me", "", logout)
	if me.Code != http.StatusSeeOther {
		t.Errorf("/me status = %d after logout, want 303", me.Code)
	}
}
