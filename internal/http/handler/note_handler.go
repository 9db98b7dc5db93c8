package handler

import (
	"net/http"

	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"go.uber.org/zap"
)

type NoteHandler struct {
	noteService *service.NoteService
	logger      *zap.Logger
}

func NewNoteHandler(noteService *service.NoteService, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Add note
// @Description The note is attributed to the authenticated user
// @Tags Notes
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.NoteRequest true "Note content"
// @Success 201 {object} domain.NoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/notes [post]
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}

	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req domain.NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.noteService.Create(r.Context(), projectID, userCtx.Actor(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create note")
		return
	}

	respondJSON(w, http.StatusCreated, note)
}

// Delete godoc
// @Summary Delete note
// @Tags Notes
// @Param id path string true "Project ID"
// @Param noteId path string true "Note ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/notes/{noteId} [delete]
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "noteId", "note")
	if !ok {
		return
	}

	if err := h.noteService.Delete(r.Context(), projectID, id); err != nil {
		respondServiceError(w, h.logger, err, "delete note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
