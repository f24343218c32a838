package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/md-rashed-zaman/facilitycal/libs/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminGuard_WarnsWithoutSecret(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := adminGuard(logger, "")(okHandler())
	if !strings.Contains(buf.String(), "ADMIN_JWT_SECRET not set") {
		t.Fatalf("expected a startup warning, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Fatalf("expected warn level, got %q", buf.String())
	}

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/api/v1/holidays", nil))
	if rw.Code != http.StatusOK {
		t.Fatalf("expected open route without a secret, got %d", rw.Code)
	}
}

func TestAdminGuard_EnforcesRoleWithSecret(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := adminGuard(logger, "test-secret")(okHandler())
	if buf.Len() != 0 {
		t.Fatalf("expected no warning, got %q", buf.String())
	}

	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/api/v1/holidays", nil))
	if rw.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rw.Code)
	}

	token, err := auth.SignHS256("ops", "admin", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/holidays", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200 with admin token, got %d", rw.Code)
	}
}
