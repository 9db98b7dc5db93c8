package handler

import (
	"net/http"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"go.uber.org/zap"
)

type MaterialHandler struct {
	materialService *service.MaterialService
	logger          *zap.Logger
}

func NewMaterialHandler(materialService *service.MaterialService, logger *zap.Logger) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
		logger:          logger,
	}
}

// Create godoc
// @Summary Add material
// @Description The total cost is always quantity times unit cost. Unit defaults to "stuks".
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.MaterialRequest true "Material data"
// @Success 201 {object} domain.MaterialDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/materials [post]
func (h *MaterialHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}

	var req domain.MaterialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	material, err := h.materialService.Create(r.Context(), projectID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "create material")
		return
	}

	respondJSON(w, http.StatusCreated, material)
}

// Update godoc
// @Summary Update material
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param materialId path string true "Material ID"
// @Param request body domain.MaterialRequest true "Material data"
// @Success 200 {object} domain.MaterialDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/materials/{materialId} [put]
func (h *MaterialHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "materialId", "material")
	if !ok {
		return
	}

	var req domain.MaterialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	material, err := h.materialService.Update(r.Context(), projectID, id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update material")
		return
	}

	respondJSON(w, http.StatusOK, material)
}

// Delete godoc
// @Summary Delete material
// @Tags Materials
// @Param id path string true "Project ID"
// @Param materialId path string true "Material ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/materials/{materialId} [delete]
func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "materialId", "material")
	if !ok {
		return
	}

	if err := h.materialService.Delete(r.Context(), projectID, id); err != nil {
		respondServiceError(w, h.logger, err, "delete material")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
