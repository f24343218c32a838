package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHS256RoundTrip(t *testing.T) {
	secret := "test-secret"
	token, err := SignHS256("user-1", "admin", secret, time.Hour)
	if err != nil {
		t.Fatalf("SignHS256 failed: %v", err)
	}
	parsed, err := ParseAndVerifyHS256(token, secret)
	if err != nil {
		t.Fatalf("ParseAndVerifyHS256 failed: %v", err)
	}
	if parsed.Subject != "user-1" || parsed.Role != "admin" {
		t.Fatalf("claims mismatch: got %+v", parsed)
	}
	if _, err := ParseAndVerifyHS256(token, "wrong-secret"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := SignHS256("user-1", "admin", "s", -time.Minute)
	if err != nil {
		t.Fatalf("SignHS256 failed: %v", err)
	}
	if _, err := ParseAndVerifyHS256(token, "s"); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestRequireRole(t *testing.T) {
	secret := "test-secret"
	h := RequireRole(secret, "admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(authz string) int {
		req := httptest.NewRequest(http.MethodPost, "http://example.com", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rw := httptest.NewRecorder()
		h.ServeHTTP(rw, req)
		return rw.Code
	}

	if code := send(""); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	member, _ := SignHS256("u", "member", secret, time.Hour)
	if code := send("Bearer " + member); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	admin, _ := SignHS256("u", "admin", secret, time.Hour)
	if code := send("bearer " + admin); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireRole_DisabledWithoutSecret(t *testing.T) {
	h := RequireRole("", "admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	if rw.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rw.Code)
	}
}
