package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mail"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"go.uber.org/zap"
)

// ContactSubmissionService handles the public contact form and the admin inbox
type ContactSubmissionService struct {
	submissionRepo *repository.ContactSubmissionRepository
	mailer         mail.Mailer
	adminAddress   string
	logger         *zap.Logger
	now            func() time.Time
}

func NewContactSubmissionService(
	submissionRepo *repository.ContactSubmissionRepository,
	mailer mail.Mailer,
	adminAddress string,
	logger *zap.Logger,
) *ContactSubmissionService {
	return &ContactSubmissionService{
		submissionRepo: submissionRepo,
		mailer:         mailer,
		adminAddress:   adminAddress,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a public contact form message as new and notifies the admin
// inbox. A failed notification is logged and does not fail the submission.
func (s *ContactSubmissionService) Submit(ctx context.Context, req *domain.ContactSubmissionRequest) (*domain.ContactSubmissionDTO, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	submission := &domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Status:  domain.ContactStatusNew,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create contact submission: %w", err)
	}

	s.logger.Info("contact submission received", zap.String("submission_id", submission.ID.String()))

	s.notify(ctx, submission)

	dto := mapper.ToContactSubmissionDTO(submission)
	return &dto, nil
}

func (s *ContactSubmissionService) notify(ctx context.Context, submission *domain.ContactSubmission) {
	if s.adminAddress == "" {
		s.logger.Warn("no admin address configured, skipping contact notification")
		return
	}

	data := map[string]string{
		"name":    submission.Name,
		"email":   submission.Email,
		"phone":   submission.Phone,
		"subject": submission.Subject,
		"message": submission.Message,
	}
	if err := s.mailer.Send(ctx, mail.TemplateContactSubmission, s.adminAddress, data); err != nil {
		s.logger.Warn("failed to send contact notification",
			zap.String("submission_id", submission.ID.String()),
			zap.Error(err),
		)
	}
}

// GetByID returns the submission and marks it read when it is still new
func (s *ContactSubmissionService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactSubmissionDTO, error) {
	if _, err := s.submissionRepo.MarkAsRead(ctx, id, s.now()); err != nil {
		return nil, fmt.Errorf("failed to mark contact submission as read: %w", err)
	}

	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrContactSubmissionNotFound, "get contact submission")
	}

	dto := mapper.ToContactSubmissionDTO(submission)
	return &dto, nil
}

// Update changes status and notes. A submission cannot go back to new once
// it has left it; read_at is stamped the first time it leaves new.
func (s *ContactSubmissionService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateContactSubmissionRequest) (*domain.ContactSubmissionDTO, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrContactSubmissionNotFound, "get contact submission")
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Status != nil {
		status := domain.ContactStatus(*req.Status)
		if status == domain.ContactStatusNew && submission.Status != domain.ContactStatusNew {
			return nil, domain.NewValidationError("status", "A handled submission cannot be marked as new again")
		}
		previous := submission.Status
		submission.TransitionTo(status, s.now())
		if previous != status {
			s.logger.Info("contact submission status changed",
				zap.String("submission_id", id.String()),
				zap.String("from", string(previous)),
				zap.String("to", string(status)),
			)
		}
	}
	if req.Notes != nil {
		submission.Notes = *req.Notes
	}

	if err := s.submissionRepo.Update(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to update contact submission: %w", err)
	}

	dto := mapper.ToContactSubmissionDTO(submission)
	return &dto, nil
}

func (s *ContactSubmissionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.submissionRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, ErrContactSubmissionNotFound, "get contact submission")
	}

	if err := s.submissionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact submission: %w", err)
	}
	return nil
}

// List returns a page of submissions, new ones first, plus counts per status
func (s *ContactSubmissionService) List(ctx context.Context, page int, status domain.ContactStatus) (*domain.ContactSubmissionListResponse, error) {
	page = repository.ClampPage(page)

	submissions, total, err := s.submissionRepo.List(ctx, page, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", err)
	}

	counts, err := s.submissionRepo.StatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contact submissions: %w", err)
	}

	dtos := make([]domain.ContactSubmissionDTO, len(submissions))
	for i := range submissions {
		dtos[i] = mapper.ToContactSubmissionDTO(&submissions[i])
	}

	return &domain.ContactSubmissionListResponse{
		PaginatedResponse: *domain.NewPaginatedResponse(dtos, total, page, repository.ContactSubmissionPageSize),
		StatusCounts:      counts,
	}, nil
}
