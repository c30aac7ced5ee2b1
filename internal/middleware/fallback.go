package middleware

import (
	"net/http"

	"appforge/internal/domain"
	"appforge/internal/httputil"
)

// Fallback replaces the mux's plain-text "404 page not found" and
// "405 method not allowed" defaults with the standard response envelope.
// Matched routes pass through untouched.
func Fallback(mux *http.ServeMux, responder *httputil.Responder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			h.ServeHTTP(w, r)
			return
		}

		// The mux's fallback handler knows whether this is a missing route
		// or a method mismatch; probe it for the status without letting it
		// write the plain-text body.
		probe := &statusProbe{header: make(http.Header)}
		h.ServeHTTP(probe, r)

		code := domain.CodeNotFound
		if probe.status == http.StatusMethodNotAllowed {
			code = domain.CodeMethodNotAllowed
		}
		responder.Code(w, r, code)
	})
}

// statusProbe records the response status and discards the body.
type statusProbe struct {
	header http.Header
	status int
}

func (p *statusProbe) Header() http.Header         { return p.header }
func (p *statusProbe) Write(b []byte) (int, error) { return len(b), nil }
func (p *statusProbe) WriteHeader(status int)      { p.status = status }
