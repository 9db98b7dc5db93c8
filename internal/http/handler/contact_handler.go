package handler

import (
	"net/http"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/service"
	"go.uber.org/zap"
)

// ContactHandler serves the public contact form and its back-office inbox
type ContactHandler struct {
	submissionService *service.ContactSubmissionService
	logger            *zap.Logger
}

func NewContactHandler(submissionService *service.ContactSubmissionService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// Submit godoc
// @Summary Submit contact form
// @Description Public endpoint. Stores the submission and notifies the administrator.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body domain.ContactSubmissionRequest true "Contact form"
// @Success 201 {object} domain.ContactSubmissionDTO
// @Failure 400 {object} domain.APIError
// @Failure 429 {object} domain.APIError
// @Router /contact [post]
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactSubmissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	submission, err := h.submissionService.Submit(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "submit contact form")
		return
	}

	respondJSON(w, http.StatusCreated, submission)
}

// List godoc
// @Summary List contact submissions
// @Description New submissions first, then newest first, 20 per page, with counts per status
// @Tags Contact Submissions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param status query string false "Filter by status" Enums(new, read, replied, archived)
// @Success 200 {object} domain.ContactSubmissionListResponse{data=[]domain.ContactSubmissionDTO}
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contact-submissions [get]
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.ParseContactStatusFilter(r.URL.Query().Get("status"))

	result, err := h.submissionService.List(r.Context(), parsePage(r), status)
	if err != nil {
		respondServiceError(w, h.logger, err, "list contact submissions")
		return
	}

	result.WithLinks(r.URL)
	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get contact submission
// @Description Viewing a new submission marks it as read
// @Tags Contact Submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} domain.ContactSubmissionDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contact-submissions/{id} [get]
func (h *ContactHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "contact submission")
	if !ok {
		return
	}

	submission, err := h.submissionService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "get contact submission")
		return
	}

	respondJSON(w, http.StatusOK, submission)
}

// Update godoc
// @Summary Update contact submission
// @Description Sets status and internal notes. A submission cannot be moved back to new.
// @Tags Contact Submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body domain.UpdateContactSubmissionRequest true "Status and notes"
// @Success 200 {object} domain.ContactSubmissionDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contact-submissions/{id} [patch]
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "contact submission")
	if !ok {
		return
	}

	var req domain.UpdateContactSubmissionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	submission, err := h.submissionService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "update contact submission")
		return
	}

	respondJSON(w, http.StatusOK, submission)
}

// Delete godoc
// @Summary Delete contact submission
// @Tags Contact Submissions
// @Param id path string true "Submission ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /contact-submissions/{id} [delete]
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id", "contact submission")
	if !ok {
		return
	}

	if err := h.submissionService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "delete contact submission")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
