package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// NewLocalRateLimiter limits requests per client IP within a single instance.
// Use RedisRateLimiter when several instances run behind a load balancer.
func NewLocalRateLimiter(limit int, window time.Duration) Middleware {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) { return clientKey(r), nil }),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
	)
}
