package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"go.uber.org/zap"
)

type NoteService struct {
	noteRepo    *repository.NoteRepository
	projectRepo *repository.ProjectRepository
	logger      *zap.Logger
}

func NewNoteService(noteRepo *repository.NoteRepository, projectRepo *repository.ProjectRepository, logger *zap.Logger) *NoteService {
	return &NoteService{
		noteRepo:    noteRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// Create adds a note written by author
func (s *NoteService) Create(ctx context.Context, projectID uuid.UUID, author domain.Actor, req *domain.NoteRequest) (*domain.NoteDTO, error) {
	if err := requireProject(ctx, s.projectRepo, projectID); err != nil {
		return nil, err
	}
	req.Content = strings.TrimSpace(req.Content)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	note := &domain.ProjectNote{
		ProjectID:  projectID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Content:    req.Content,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.logger.Info("note created",
		zap.String("project_id", projectID.String()),
		zap.String("note_id", note.ID.String()),
		zap.String("author_id", author.ID.String()),
	)

	dto := mapper.ToNoteDTO(note)
	return &dto, nil
}

func (s *NoteService) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	if _, err := s.noteRepo.GetByProject(ctx, projectID, id); err != nil {
		return lookupError(err, ErrNoteNotFound, "get note")
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
