package middleware

import (
	"log/slog"
	"net/http"

	"github.com/tradehub/escrow-settlement/pkg/ratelimit"
)

// RateLimit enforces the per-actor request budget. Anonymous requests are
// keyed by remote address. When Redis itself fails the request is allowed
// through: the limiter is a throttle, not an availability dependency.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ActorID(r)
			if key == "" {
				key = r.RemoteAddr
			}

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("rate limiter unavailable", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
