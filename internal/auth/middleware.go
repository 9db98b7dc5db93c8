package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/logger"
	"go.uber.org/zap"
)

// APIKeyHeader carries the admin API key
const APIKeyHeader = "x-api-key"

// systemUser is the caller for requests made with the admin API key
var systemUser = UserContext{
	UserID:      uuid.Nil,
	DisplayName: "System",
	AuthType:    AuthTypeAPIKey,
}

// Middleware authenticates back-office requests
type Middleware struct {
	tokens *JWTValidator
	apiKey []byte
	logger *zap.Logger
}

func NewMiddleware(cfg *config.Config, log *zap.Logger) *Middleware {
	return &Middleware{
		tokens: NewJWTValidator(&cfg.Auth),
		apiKey: []byte(cfg.ApiKey.Value),
		logger: log,
	}
}

// Authenticate accepts the admin API key or a bearer session token. The API
// key is checked first when both are present.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, reason := m.authenticate(r)
		if user == nil {
			m.logger.Warn("authentication failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("reason", reason),
			)
			unauthorized(w, reason)
			return
		}

		logger.WithUser(m.logger, user.UserID, user.Actor().Name).Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("auth_type", user.AuthType),
		)
		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
	})
}

// authenticate returns the caller, or nil and a reason safe to show clients
func (m *Middleware) authenticate(r *http.Request) (*UserContext, string) {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		if !m.validAPIKey(key) {
			return nil, "invalid API key"
		}
		user := systemUser
		return &user, ""
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, "missing authorization header"
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return nil, "invalid authorization header format"
	}

	user, err := m.tokens.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		return nil, err.Error()
	}
	return user, ""
}

func (m *Middleware) validAPIKey(key string) bool {
	if len(m.apiKey) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), m.apiKey) == 1
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="facility-api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(domain.APIError{
		Type:   domain.ErrorTypeUnauthorized,
		Title:  http.StatusText(http.StatusUnauthorized),
		Status: http.StatusUnauthorized,
		Detail: detail,
	})
}
