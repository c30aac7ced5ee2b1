package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"appforge/internal/httputil"
)

func TestLocaleNegotiation(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"no header", "", "en"},
		{"english", "en-US,en;q=0.9", "en"},
		{"simplified chinese", "zh-CN,zh;q=0.9,en;q=0.8", "zh"},
		{"plain chinese", "zh", "zh"},
		{"unsupported falls back", "fr-FR,fr;q=0.9", "en"},
		{"garbage header", ";;;", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = httputil.Lang(r)
			})

			r := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
			if tt.header != "" {
				r.Header.Set("Accept-Language", tt.header)
			}
			Locale()(next).ServeHTTP(httptest.NewRecorder(), r)

			if got != tt.want {
				t.Errorf("negotiated lang = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequestIDAssignedAndEchoed(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = httputil.RequestID(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	RequestID()(next).ServeHTTP(rec, r)

	if got == "" {
		t.Fatal("no request id assigned")
	}
	if rec.Header().Get("X-Request-ID") != got {
		t.Errorf("response header = %q, context id = %q", rec.Header().Get("X-Request-ID"), got)
	}
}

func TestRequestIDHonorsCaller(t *testing.T) {
	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = httputil.RequestID(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.Header.Set("X-Request-ID", "caller-supplied")
	RequestID()(next).ServeHTTP(httptest.NewRecorder(), r)

	if got != "caller-supplied" {
		t.Errorf("request id = %q, want caller-supplied", got)
	}
}
