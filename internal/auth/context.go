package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
)

// Authentication methods recorded on UserContext
const (
	AuthTypeAPIKey = "api_key"
	AuthTypeJWT    = "jwt"
)

// UserContext is the authenticated caller of a request
type UserContext struct {
	UserID      uuid.UUID
	DisplayName string
	Email       string
	AuthType    string
}

type userKey struct{}

func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// FromContext reports the caller stored by Authenticate. ok is false for
// unauthenticated routes.
func FromContext(ctx context.Context) (user *UserContext, ok bool) {
	user, ok = ctx.Value(userKey{}).(*UserContext)
	return user, ok && user != nil
}

// MustFromContext is for handlers mounted behind Authenticate
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("auth: no user on context; route is not behind Authenticate")
	}
	return user
}

// Actor returns the identity recorded as author on notes and uploads
func (u *UserContext) Actor() domain.Actor {
	name := u.DisplayName
	if name == "" {
		name = u.Email
	}
	return domain.Actor{ID: u.UserID, Name: name}
}
