package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"appforge/internal/httputil"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a correlation id, honoring one supplied by
// the caller, and echoes it back in the response headers.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, id)
			next.ServeHTTP(w, httputil.WithRequestID(r, id))
		})
	}
}
