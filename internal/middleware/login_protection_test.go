// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginProtection_LockoutAfterFailures(t *testing.T) {
	lp := NewLoginProtection()
	email := "admin@example.com"

	for i := 0; i < 4; i++ {
		locked, _ := lp.RecordFailedAttempt(email)
		if locked {
			t.Fatalf("locked after %d attempts, want lockout at 5", i+1)
		}
	}

	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("not locked after 5 failed attempts")
	}
	if duration <= 0 {
		t.Errorf("lock duration = %v", duration)
	}

	nowLocked, remaining := lp.IsAccountLocked(email)
	if !nowLocked || remaining <= 0 {
		t.Errorf("IsAccountLocked = (%v, %v), want locked with time remaining", nowLocked, remaining)
	}
}

func TestLoginProtection_SuccessClearsAttempts(t *testing.T) {
	lp := NewLoginProtection()
	email := "admin@example.com"

	for i := 0; i < 4; i++ {
		lp.RecordFailedAttempt(email)
	}
	lp.RecordSuccessfulLogin(email)

	// The counter restarted; one more failure must not lock
	if locked, _ := lp.RecordFailedAttempt(email); locked {
		t.Error("locked right after a successful login cleared the counter")
	}
}

func TestLoginProtection_AccountsAreIndependent(t *testing.T) {
	lp := NewLoginProtection()

	for i := 0; i < 5; i++ {
		lp.RecordFailedAttempt("victim@example.com")
	}

	if locked, _ := lp.IsAccountLocked("other@example.com"); locked {
		t.Error("lockout leaked across accounts")
	}
}

func TestLoginProtection_ForwardedHeadersDoNotResetBucket(t *testing.T) {
	lp := NewLoginProtection()
	handler := lp.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// One client rotating forwarding headers still drains one bucket
	limited := false
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "198.51.100.9:44321"
		req.Header.Set("X-Real-IP", fmt.Sprintf("10.0.0.%d", i))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.1.0.%d", i))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("header rotation bypassed the per-client rate limit")
	}
}

func TestLoginProtection_IPRateLimit(t *testing.T) {
	lp := NewLoginProtection()

	// The burst allows the first requests through
	allowed := 0
	for i := 0; i < 20; i++ {
		if lp.CheckIPRateLimit("203.0.113.7") {
			allowed++
		}
	}
	if allowed == 0 || allowed == 20 {
		t.Errorf("allowed %d of 20 burst requests, want some but not all", allowed)
	}

	// A different IP has its own bucket
	if !lp.CheckIPRateLimit("203.0.113.8") {
		t.Error("fresh IP denied")
	}
}
