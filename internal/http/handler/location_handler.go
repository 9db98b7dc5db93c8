package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"go.uber.org/zap"
)

type LocationHandler struct {
	locationService *service.LocationService
	logger          *zap.Logger
}

func NewLocationHandler(locationService *service.LocationService, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		logger:          logger,
	}
}

// List godoc
// @Summary List locations
// @Description Paginated list of locations ordered by name, 15 per page
// @Tags Locations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param search query string false "Matches name, address, city or client name"
// @Param clientId query string false "Only locations of this client"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.LocationDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /locations [get]
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// An unparseable client id is ignored like any other unknown filter
	var clientID *uuid.UUID
	if id, err := uuid.Parse(query.Get("clientId")); err == nil {
		clientID = &id
	}

	result, err := h.locationService.List(r.Context(), parsePage(r), query.Get("search"), clientID)
	if err != nil {
		respondServiceError(w, h.logger, err, "list locations")
		return
	}

	respondJSON(w, http.StatusOK, result.WithLinks(r.URL))
}

// GetByID godoc
// @Summary Get location
// @Tags Locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} domain.LocationDetailDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /locations/{id} [get]
func (h *LocationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "location")
	if !ok {
		return
	}

	location, err := h.locationService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get location")
		return
	}

	respondJSON(w, http.StatusOK, location)
}

// Create godoc
// @Summary Create location
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body domain.LocationRequest true "Location data"
// @Success 201 {object} domain.LocationDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /locations [post]
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	location, err := h.locationService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create location")
		return
	}

	respondJSON(w, http.StatusCreated, location)
}

// Update godoc
// @Summary Update location
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param request body domain.LocationRequest true "Location data"
// @Success 200 {object} domain.LocationDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /locations/{id} [put]
func (h *LocationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "location")
	if !ok {
		return
	}

	var req domain.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	location, err := h.locationService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update location")
		return
	}

	respondJSON(w, http.StatusOK, location)
}

// Delete godoc
// @Summary Delete location
// @Tags Locations
// @Param id path string true "Location ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /locations/{id} [delete]
func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "location")
	if !ok {
		return
	}

	if err := h.locationService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete location")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
