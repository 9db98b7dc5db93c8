package handler

import (
	"net/http"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"go.uber.org/zap"
)

type ActivityTypeHandler struct {
	activityTypeService *service.ActivityTypeService
	logger              *zap.Logger
}

func NewActivityTypeHandler(activityTypeService *service.ActivityTypeService, logger *zap.Logger) *ActivityTypeHandler {
	return &ActivityTypeHandler{
		activityTypeService: activityTypeService,
		logger:              logger,
	}
}

// List godoc
// @Summary List activity types
// @Tags Activity Types
// @Produce json
// @Param active query bool false "Only active activity types"
// @Success 200 {array} domain.ActivityTypeDTO
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activity-types [get]
func (h *ActivityTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	types, err := h.activityTypeService.List(r.Context(), activeOnly)
	if err != nil {
		respondServiceError(w, h.logger, err, "list activity types")
		return
	}

	respondJSON(w, http.StatusOK, types)
}

// Create godoc
// @Summary Create activity type
// @Tags Activity Types
// @Accept json
// @Produce json
// @Param request body domain.ActivityTypeRequest true "Activity type data"
// @Success 201 {object} domain.ActivityTypeDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activity-types [post]
func (h *ActivityTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ActivityTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	activityType, err := h.activityTypeService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create activity type")
		return
	}

	respondJSON(w, http.StatusCreated, activityType)
}

// Update godoc
// @Summary Update activity type
// @Tags Activity Types
// @Accept json
// @Produce json
// @Param id path string true "Activity type ID"
// @Param request body domain.ActivityTypeRequest true "Activity type data"
// @Success 200 {object} domain.ActivityTypeDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activity-types/{id} [put]
func (h *ActivityTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "activity type")
	if !ok {
		return
	}

	var req domain.ActivityTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	activityType, err := h.activityTypeService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update activity type")
		return
	}

	respondJSON(w, http.StatusOK, activityType)
}

// Delete godoc
// @Summary Delete activity type
// @Description Refused with 409 while time entries reference the activity type
// @Tags Activity Types
// @Param id path string true "Activity type ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activity-types/{id} [delete]
func (h *ActivityTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "activity type")
	if !ok {
		return
	}

	if err := h.activityTypeService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete activity type")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
