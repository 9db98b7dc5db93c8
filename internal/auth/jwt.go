package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// sessionClaims is the payload of a back-office session token
type sessionClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
	UPN               string `json:"upn"`
}

// JWTValidator verifies HS256 session tokens signed with a shared secret.
// Tokens must carry an expiry; issuer and audience are checked when set.
type JWTValidator struct {
	secret []byte
	opts   []jwt.ParserOption
}

func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &JWTValidator{secret: []byte(cfg.JWTSecret), opts: opts}
}

// ValidateToken parses a token into the caller it identifies
func (v *JWTValidator) ValidateToken(raw string) (*UserContext, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: token authentication not configured", ErrInvalidToken)
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID := subjectID(claims.Subject)
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &UserContext{
		UserID:      userID,
		DisplayName: firstNonEmpty(claims.Name, claims.PreferredUsername),
		Email:       firstNonEmpty(claims.Email, claims.UPN),
		AuthType:    AuthTypeJWT,
	}, nil
}

// subjectID maps a UUID subject onto itself and anything else onto a
// stable name-based UUID
func subjectID(sub string) uuid.UUID {
	if sub == "" {
		return uuid.Nil
	}
	if id, err := uuid.Parse(sub); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(sub))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
