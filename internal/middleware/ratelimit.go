package middleware

import (
	"log/slog"
	"net/http"
)

// Allower decides whether a client may proceed.
type Allower interface {
	Allow(client string) bool
}

// RateLimit rejects requests with 429 when limiter denies the client
// returned by clientOf.
func RateLimit(limiter Allower, clientOf func(*http.Request) string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientOf(r)
			if !limiter.Allow(client) {
				logger.Debug("Rate limited", "client", client, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
