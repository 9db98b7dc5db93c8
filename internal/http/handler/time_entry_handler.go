package handler

import (
	"net/http"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"go.uber.org/zap"
)

type TimeEntryHandler struct {
	timeEntryService *service.TimeEntryService
	logger           *zap.Logger
}

func NewTimeEntryHandler(timeEntryService *service.TimeEntryService, logger *zap.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		timeEntryService: timeEntryService,
		logger:           logger,
	}
}

// Create godoc
// @Summary Add time entry
// @Tags Time Entries
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.TimeEntryRequest true "Time entry data"
// @Success 201 {object} domain.TimeEntryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/time-entries [post]
func (h *TimeEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.TimeEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.timeEntryService.Create(r.Context(), projectID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create time entry")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// Update godoc
// @Summary Update time entry
// @Tags Time Entries
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param entryId path string true "Time entry ID"
// @Param request body domain.TimeEntryRequest true "Time entry data"
// @Success 200 {object} domain.TimeEntryDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/time-entries/{entryId} [put]
func (h *TimeEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "entryId", "time entry")
	if !ok {
		return
	}

	var req domain.TimeEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.timeEntryService.Update(r.Context(), projectID, id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update time entry")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete time entry
// @Tags Time Entries
// @Param id path string true "Project ID"
// @Param entryId path string true "Time entry ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/time-entries/{entryId} [delete]
func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "entryId", "time entry")
	if !ok {
		return
	}

	if err := h.timeEntryService.Delete(r.Context(), projectID, id); err != nil {
		respondServiceError(w, h.logger, err, "delete time entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
