package middleware

import (
	"net/http"
)

// LimitRequestBody caps request bodies at maxBytes. Form parsing past the
// limit fails, which the handlers report as 400. A non-positive maxBytes
// disables the cap.
func LimitRequestBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
