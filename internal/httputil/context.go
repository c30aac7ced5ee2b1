package httputil

import (
	"context"
	"net/http"

	"appforge/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	identityKey  contextKey = "identity"
	langKey      contextKey = "lang"
	requestIDKey contextKey = "requestID"
)

// WithIdentity attaches the authenticated request context.
func WithIdentity(r *http.Request, rc models.Context) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, rc))
}

// Identity retrieves the authenticated request context. ok is false on
// unauthenticated routes.
func Identity(r *http.Request) (models.Context, bool) {
	rc, ok := r.Context().Value(identityKey).(models.Context)
	return rc, ok
}

// WithLang attaches the negotiated response language tag.
func WithLang(r *http.Request, lang string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), langKey, lang))
}

// Lang returns the negotiated language, defaulting to English.
func Lang(r *http.Request) string {
	return LangFromContext(r.Context())
}

// LangFromContext reads the negotiated language off a bare context, for
// callers below the HTTP layer.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey).(string); ok && lang != "" {
		return lang
	}
	return "en"
}

// WithRequestID attaches the request correlation id.
func WithRequestID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDKey, id))
}

// RequestID returns the request correlation id, if set.
func RequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
