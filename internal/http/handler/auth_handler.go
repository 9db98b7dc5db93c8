package handler

import (
	"net/http"

	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/domain"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the identity resolved from the API key or bearer token
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	actor := userCtx.Actor()
	respondJSON(w, http.StatusOK, domain.AuthUserDTO{
		ID:       actor.ID,
		Name:     actor.Name,
		Email:    userCtx.Email,
		AuthType: userCtx.AuthType,
	})
}
