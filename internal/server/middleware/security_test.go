package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := SecurityHeaders(SecurityHeadersConfig{})(handler)

	req := httptest.NewRequest("GET", "/mcp", nil)
	rec := httptest.NewRecorder()

	middleware.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "default-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		rec.Header().Get("Content-Security-Policy"))
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	tests := []struct {
		name       string
		enableHSTS bool
		withTLS    bool
		expectHSTS bool
	}{
		{
			name:       "no TLS and HSTS disabled",
			enableHSTS: false,
			withTLS:    false,
			expectHSTS: false,
		},
		{
			name:       "HSTS enabled without TLS",
			enableHSTS: true,
			withTLS:    false,
			expectHSTS: true,
		},
		{
			name:       "TLS connection without explicit HSTS",
			enableHSTS: false,
			withTLS:    true,
			expectHSTS: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			middleware := SecurityHeaders(SecurityHeadersConfig{EnableHSTS: tt.enableHSTS})(handler)

			req := httptest.NewRequest("GET", "/mcp", nil)
			if tt.withTLS {
				req.TLS = &tls.ConnectionState{}
			}
			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			if tt.expectHSTS {
				assert.Equal(t, "max-age=31536000; includeSubDomains; preload",
					rec.Header().Get("Strict-Transport-Security"))
			} else {
				assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
			}
		})
	}
}

func TestSecurityHeaders_PreservesResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	middleware := SecurityHeaders(SecurityHeadersConfig{})(handler)

	req := httptest.NewRequest("POST", "/mcp", nil)
	rec := httptest.NewRecorder()

	middleware.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}
