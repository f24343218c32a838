package runtime

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMountHealth(t *testing.T) {
	r := chi.NewRouter()
	MountHealth(r,
		ReadyCheck{Name: "db", Check: func(context.Context) error { return nil }},
		ReadyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("down") }},
		ReadyCheck{Name: "kafka"},
	)

	rw := httptest.NewRecorder()
	r.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}

	rw = httptest.NewRecorder()
	r.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rw.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rw.Code)
	}
	if !strings.Contains(rw.Body.String(), `"redis":"down"`) {
		t.Fatalf("unexpected body %s", rw.Body.String())
	}
	if strings.Contains(rw.Body.String(), "kafka") {
		t.Fatalf("nil check must be skipped: %s", rw.Body.String())
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("DEBUG").String() != "DEBUG" || ParseLevel("").String() != "INFO" {
		t.Fatal("unexpected levels")
	}
}
