package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRecovery(t *testing.T) {
	handler := middleware.Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body domain.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, body.Status)
	assert.NotContains(t, body.Detail, "boom")
}

func TestLogging_RequestID(t *testing.T) {
	var seen string
	handler := middleware.Logging(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(middleware.RequestIDHeader)
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("incoming id is kept", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, id)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.Equal(t, id, rr.Header().Get(middleware.RequestIDHeader))
		assert.Equal(t, id, seen)
	})

	t.Run("missing or malformed id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "not-a-uuid")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		generated := rr.Header().Get(middleware.RequestIDHeader)
		_, err := uuid.Parse(generated)
		require.NoError(t, err)
		assert.Equal(t, generated, seen)
	})
}

func TestSecurityHeaders(t *testing.T) {
	cfg := &config.SecurityConfig{
		EnableHSTS:            true,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		ContentSecurityPolicy: "default-src 'self'",
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
	}
	handler := middleware.SecurityHeaders(cfg)(okHandler)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))

	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "max-age=31536000; includeSubDomains", rr.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "default-src 'self'", rr.Header().Get("Content-Security-Policy"))
	assert.Empty(t, rr.Header().Get("Referrer-Policy"))

	t.Run("swagger ui has no csp", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

		assert.Empty(t, rr.Header().Get("Content-Security-Policy"))
		assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	})
}

func TestCORS(t *testing.T) {
	base := config.CORSConfig{
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}

	preflight := func(handler http.Handler, origin string) string {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/contact", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Header().Get("Access-Control-Allow-Origin")
	}

	tests := []struct {
		name        string
		origins     []string
		environment string
		origin      string
		allowed     bool
	}{
		{"explicit origin", []string{"https://www.onderhoud.nl"}, "production", "https://www.onderhoud.nl", true},
		{"unlisted origin", []string{"https://www.onderhoud.nl"}, "production", "https://evil.example", false},
		{"wildcard subdomain", []string{"https://*.onderhoud.nl"}, "production", "https://beheer.onderhoud.nl", true},
		{"empty list in development", nil, "development", "http://localhost:5173", true},
		{"empty list in production", nil, "production", "http://localhost:5173", false},
		{"bare wildcard", []string{"*"}, "staging", "https://anything.example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.AllowedOrigins = tt.origins
			handler := middleware.CORS(&cfg, tt.environment, zap.NewNop())(okHandler)

			got := preflight(handler, tt.origin)
			if tt.allowed {
				assert.Equal(t, tt.origin, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func newLimiter(cfg config.RateLimitConfig) *middleware.RateLimiter {
	return middleware.NewRateLimiter(&cfg, zap.NewNop())
}

func hit(handler http.Handler, path, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr.Code
}

func TestRateLimiter_LimitByIP(t *testing.T) {
	rl := newLimiter(config.RateLimitConfig{
		Enabled:                  true,
		RequestsPerMinute:        2,
		RequestsPerMinuteAuth:    2,
		ContactRequestsPerMinute: 1,
		WhitelistIPs:             []string{"10.0.0.9"},
		WhitelistPaths:           []string{"/health", "/uploads/*"},
	})
	handler := rl.LimitByIP(okHandler)

	assert.Equal(t, http.StatusOK, hit(handler, "/api/v1/clients", "192.0.2.1:1234"))
	assert.Equal(t, http.StatusOK, hit(handler, "/api/v1/clients", "192.0.2.1:1234"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), `"status":429`)

	assert.Equal(t, http.StatusOK, hit(handler, "/api/v1/clients", "192.0.2.2:1234"), "other clients are unaffected")

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(handler, "/health", "192.0.2.1:1234"))
		assert.Equal(t, http.StatusOK, hit(handler, "/uploads/projects/a.pdf", "192.0.2.1:1234"))
		assert.Equal(t, http.StatusOK, hit(handler, "/api/v1/clients", "10.0.0.9:1"))
	}
}

func TestRateLimiter_LimitContact(t *testing.T) {
	rl := newLimiter(config.RateLimitConfig{
		Enabled:                  true,
		RequestsPerMinute:        100,
		RequestsPerMinuteAuth:    100,
		ContactRequestsPerMinute: 1,
		WhitelistIPs:             []string{"10.0.0.9"},
	})
	handler := rl.LimitContact(okHandler)

	assert.Equal(t, http.StatusOK, hit(handler, "/api/v1/contact", "10.0.0.9:1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "/api/v1/contact", "10.0.0.9:1"), "the contact limit ignores the whitelist")
}

func TestRateLimiter_LimitByUser(t *testing.T) {
	rl := newLimiter(config.RateLimitConfig{
		Enabled:                  true,
		RequestsPerMinute:        100,
		RequestsPerMinuteAuth:    1,
		ContactRequestsPerMinute: 1,
	})
	handler := rl.Limit(okHandler)

	send := func(userID uuid.UUID) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req = req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{UserID: userID}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	alice, bob := uuid.New(), uuid.New()
	assert.Equal(t, http.StatusOK, send(alice))
	assert.Equal(t, http.StatusTooManyRequests, send(alice))
	assert.Equal(t, http.StatusOK, send(bob), "users sharing an IP have separate budgets")
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := newLimiter(config.RateLimitConfig{
		Enabled:                  false,
		RequestsPerMinute:        1,
		RequestsPerMinuteAuth:    1,
		ContactRequestsPerMinute: 1,
	})

	for _, handler := range []http.Handler{rl.LimitByIP(okHandler), rl.Limit(okHandler), rl.LimitContact(okHandler)} {
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, hit(handler, "/api/v1/contact", "192.0.2.1:1234"))
		}
	}
}
