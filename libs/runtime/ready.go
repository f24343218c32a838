package runtime

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

// ReadyCheck is a named dependency check for /readyz. A nil Check is skipped.
type ReadyCheck struct {
	Name  string
	Check func(context.Context) error
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// MountHealth registers /healthz and /readyz on r.
func MountHealth(r chi.Router, checks ...ReadyCheck) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		resp := readyResponse{Status: "ok", Checks: map[string]string{}}
		status := http.StatusOK
		for _, check := range checks {
			if check.Check == nil {
				continue
			}
			name := check.Name
			if name == "" {
				name = "dependency"
			}
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			err := check.Check(ctx)
			cancel()
			if err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	})
}
