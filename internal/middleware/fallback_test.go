package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"appforge/internal/httputil"
	"appforge/internal/i18n"
)

func TestFallbackEnvelopes(t *testing.T) {
	translator, err := i18n.New()
	if err != nil {
		t.Fatalf("i18n.New() error = %v", err)
	}
	responder := httputil.NewResponder(translator, slog.New(slog.DiscardHandler))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/things", func(w http.ResponseWriter, r *http.Request) {
		responder.Void(w, r)
	})
	root := Fallback(mux, responder)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   int
	}{
		{"matched route passes through", http.MethodGet, "/api/things", http.StatusOK, 200},
		{"unknown path", http.MethodGet, "/api/nope", http.StatusNotFound, 404},
		{"wrong method", http.MethodDelete, "/api/things", http.StatusMethodNotAllowed, 405},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			root.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := envelopeCode(t, rec); got != tt.wantCode {
				t.Errorf("envelope code = %d, want %d", got, tt.wantCode)
			}
		})
	}
}
