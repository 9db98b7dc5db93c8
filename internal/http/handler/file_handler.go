package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/service"
	"go.uber.org/zap"
)

const (
	// multipartOverhead allows for boundaries and part headers around the file
	multipartOverhead = 1 << 20
	// multipartMemory is the part of a form kept in memory before spilling to disk
	multipartMemory = 8 << 20
)

type FileHandler struct {
	fileService *service.FileService
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// Upload godoc
// @Summary Upload project file
// @Description The content type is detected from the file contents
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param file formData file true "File to upload"
// @Success 201 {object} domain.FileDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/files [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}

	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	maxBytes := h.fileService.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File too large: maximum size is %dMB", maxBytes/(1024*1024)))
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	dto, err := h.fileService.Upload(r.Context(), projectID, userCtx.Actor(), header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, service.ErrFileTooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File too large: maximum size is %dMB", maxBytes/(1024*1024)))
			return
		}
		respondServiceError(w, h.logger, err, "upload file")
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

// Download godoc
// @Summary Download project file
// @Description Streams the file under its original name
// @Tags Files
// @Produce application/octet-stream
// @Param id path string true "Project ID"
// @Param fileId path string true "File ID"
// @Success 200 {file} file
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/files/{fileId} [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "fileId", "file")
	if !ok {
		return
	}

	file, reader, err := h.fileService.Download(r.Context(), projectID, id)
	if err != nil {
		respondServiceError(w, h.logger, err, "download file")
		return
	}
	defer reader.Close()

	contentType := file.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.OriginalName}))
	w.Header().Set("Content-Length", strconv.FormatInt(file.Size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("file download interrupted", zap.Error(err), zap.String("file_id", id.String()))
	}
}

// Delete godoc
// @Summary Delete project file
// @Tags Files
// @Param id path string true "Project ID"
// @Param fileId path string true "File ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /projects/{id}/files/{fileId} [delete]
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID, ok := parseUUIDParam(w, r, "id", "project")
	if !ok {
		return
	}
	id, ok := parseUUIDParam(w, r, "fileId", "file")
	if !ok {
		return
	}

	if err := h.fileService.Delete(r.Context(), projectID, id); err != nil {
		respondServiceError(w, h.logger, err, "delete file")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
