package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret = "test-secret-with-enough-length-1234"
	testAPIKey = "admin-key"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testSecret
	cfg.Auth.Issuer = "facility-web"
	cfg.ApiKey.Value = testAPIKey
	return cfg
}

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   sub,
		"name":  "Sanne de Vries",
		"email": "sanne@example.com",
		"iss":   "facility-web",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestJWTValidator_ValidateToken(t *testing.T) {
	validator := auth.NewJWTValidator(&testConfig().Auth)
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		user, err := validator.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(userID.String())))
		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "Sanne de Vries", user.DisplayName)
		assert.Equal(t, "sanne@example.com", user.Email)
		assert.Equal(t, auth.AuthTypeJWT, user.AuthType)
	})

	t.Run("non-uuid subject gets a stable id", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-42"))
		first, err := validator.ValidateToken(token)
		require.NoError(t, err)
		second, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, first.UserID)
		assert.Equal(t, first.UserID, second.UserID)
	})

	t.Run("expired", func(t *testing.T) {
		claims := validClaims(userID.String())
		claims["exp"] = time.Now().Add(-time.Minute).Unix()
		_, err := validator.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := validClaims(userID.String())
		delete(claims, "exp")
		_, err := validator.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := validator.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte("other-secret"), validClaims(userID.String())))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		_, err := validator.ValidateToken(signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims(userID.String())))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims(userID.String())
		claims["iss"] = "someone-else"
		_, err := validator.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		claims := validClaims("")
		delete(claims, "sub")
		_, err := validator.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("not configured", func(t *testing.T) {
		unconfigured := auth.NewJWTValidator(&config.AuthConfig{})
		_, err := unconfigured.ValidateToken(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(userID.String())))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestMiddleware_Authenticate(t *testing.T) {
	mw := auth.NewMiddleware(testConfig(), zap.NewNop())

	var seen *auth.UserContext
	protected := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.MustFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	userID := uuid.New()
	validToken := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(userID.String()))

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantType   string
	}{
		{"api key", map[string]string{"x-api-key": testAPIKey}, http.StatusOK, auth.AuthTypeAPIKey},
		{"wrong api key", map[string]string{"x-api-key": "nope"}, http.StatusUnauthorized, ""},
		{"bearer token", map[string]string{"Authorization": "Bearer " + validToken}, http.StatusOK, auth.AuthTypeJWT},
		{"lowercase scheme", map[string]string{"Authorization": "bearer " + validToken}, http.StatusOK, auth.AuthTypeJWT},
		{"no credentials", nil, http.StatusUnauthorized, ""},
		{"basic scheme", map[string]string{"Authorization": "Basic abc"}, http.StatusUnauthorized, ""},
		{"garbage token", map[string]string{"Authorization": "Bearer abc.def.ghi"}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()

			protected.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, tt.wantType, seen.AuthType)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}

func TestMiddleware_EmptyAPIKeyNeverMatches(t *testing.T) {
	cfg := testConfig()
	cfg.ApiKey.Value = ""
	mw := auth.NewMiddleware(cfg, zap.NewNop())

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-api-key", "anything")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body domain.APIError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrorTypeUnauthorized, body.Type)
	assert.Equal(t, "invalid API key", body.Detail)
}

func TestUserContext_Actor(t *testing.T) {
	id := uuid.New()

	named := (&auth.UserContext{UserID: id, DisplayName: "Sanne", Email: "s@example.com"}).Actor()
	assert.Equal(t, "Sanne", named.Name)
	assert.Equal(t, id, named.ID)

	unnamed := (&auth.UserContext{UserID: id, Email: "s@example.com"}).Actor()
	assert.Equal(t, "s@example.com", unnamed.Name)
}
