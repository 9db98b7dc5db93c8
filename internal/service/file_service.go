package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/storage"
	"go.uber.org/zap"
)

// sniffLen is how many leading bytes are inspected to detect the MIME type
const sniffLen = 3072

// FileService handles project attachments: the blob in storage and its record
type FileService struct {
	fileRepo    *repository.FileRepository
	projectRepo *repository.ProjectRepository
	storage     storage.Storage
	maxBytes    int64
	logger      *zap.Logger
}

// NewFileService creates a FileService. maxBytes is the upload ceiling.
func NewFileService(
	fileRepo *repository.FileRepository,
	projectRepo *repository.ProjectRepository,
	store storage.Storage,
	maxBytes int64,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo:    fileRepo,
		projectRepo: projectRepo,
		storage:     store,
		maxBytes:    maxBytes,
		logger:      logger,
	}
}

// MaxBytes returns the upload ceiling in bytes
func (s *FileService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload stores data under projects/<projectID>/<uuid><ext> and records it.
// size is the size reported by the client, or -1 when unknown; the stream is
// also limited so an understated size cannot exceed the ceiling.
func (s *FileService) Upload(ctx context.Context, projectID uuid.UUID, uploader domain.Actor, originalName string, size int64, data io.Reader) (*domain.FileDTO, error) {
	if err := requireProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	if size > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	originalName = filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if originalName == "" || originalName == "." || originalName == "/" {
		return nil, domain.NewValidationError("file", "file is required")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(data, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if n == 0 {
		return nil, domain.NewValidationError("file", "The file is empty")
	}
	head = head[:n]
	mime := mimetype.Detect(head)

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = mime.Extension()
	}
	name := uuid.New().String() + ext
	key := path.Join("projects", projectID.String(), name)

	body := &io.LimitedReader{R: io.MultiReader(bytes.NewReader(head), data), N: s.maxBytes + 1}
	storedPath, written, err := s.storage.Store(ctx, key, mime.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	if written > s.maxBytes {
		s.cleanup(ctx, storedPath)
		return nil, ErrFileTooLarge
	}

	file := &domain.ProjectFile{
		ProjectID:      projectID,
		Name:           name,
		OriginalName:   originalName,
		Path:           storedPath,
		MimeType:       mime.String(),
		Size:           written,
		UploadedByID:   uploader.ID,
		UploadedByName: uploader.Name,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		s.cleanup(ctx, storedPath)
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	s.logger.Info("file uploaded",
		zap.String("project_id", projectID.String()),
		zap.String("file_id", file.ID.String()),
		zap.String("mime_type", file.MimeType),
		zap.Int64("size", file.Size),
	)

	dto := mapper.ToFileDTO(file, s.storage.URL(file.Path))
	return &dto, nil
}

// Download opens the stored blob. The caller closes the reader.
func (s *FileService) Download(ctx context.Context, projectID, id uuid.UUID) (*domain.ProjectFile, io.ReadCloser, error) {
	file, err := s.fileRepo.GetByProject(ctx, projectID, id)
	if err != nil {
		return nil, nil, lookupError(err, ErrFileNotFound, "get file")
	}

	reader, err := s.storage.Open(ctx, file.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, reader, nil
}

// Delete removes the blob first and then the record. A failed blob delete
// leaves the record in place.
func (s *FileService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	file, err := s.fileRepo.GetByProject(ctx, projectID, id)
	if err != nil {
		return lookupError(err, ErrFileNotFound, "get file")
	}

	if err := s.storage.Delete(ctx, file.Path); err != nil {
		return fmt.Errorf("failed to delete file from storage: %w", err)
	}

	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	s.logger.Info("file deleted",
		zap.String("project_id", projectID.String()),
		zap.String("file_id", id.String()),
	)
	return nil
}

func (s *FileService) cleanup(ctx context.Context, storedPath string) {
	if err := s.storage.Delete(ctx, storedPath); err != nil {
		s.logger.Warn("failed to cleanup file from storage",
			zap.Error(err),
			zap.String("path", storedPath),
		)
	}
}
