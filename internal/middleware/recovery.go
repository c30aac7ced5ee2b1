package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"appforge/internal/domain"
	"appforge/internal/httputil"
)

// Recovery middleware recovers from panics and answers with an internal
// error envelope
func Recovery(responder *httputil.Responder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"method", r.Method,
						"request_id", httputil.RequestID(r),
						"stack", string(debug.Stack()),
					)

					responder.Code(w, r, domain.CodeInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
