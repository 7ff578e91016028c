// Package middleware holds the HTTP middleware shared by the API service:
// structured request logging, actor identification and per-actor rate
// limiting.
package middleware

import (
	"net/http"
)

// ActorHeader carries the authenticated user's ID. The upstream API gateway
// verifies the session and injects this header; the engine itself never
// parses credentials.
const ActorHeader = "X-User-Id"

// ActorID extracts the acting user's ID from the request, empty when absent.
func ActorID(r *http.Request) string {
	return r.Header.Get(ActorHeader)
}

// RequireActor rejects requests that do not carry an actor header. Handlers
// behind it can read ActorID without re-checking.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorID(r) == "" {
			http.Error(w, "missing "+ActorHeader+" header", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
