package service

import (
	"context"
	"fmt"

	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/mapper"
	"github.com/straye-as/facility-api/internal/repository"
	"go.uber.org/zap"
)

// dashboardRecentLimit is how many recent contacts and projects are shown
const dashboardRecentLimit = 5

type DashboardService struct {
	submissionRepo *repository.ContactSubmissionRepository
	projectRepo    *repository.ProjectRepository
	logger         *zap.Logger
}

func NewDashboardService(
	submissionRepo *repository.ContactSubmissionRepository,
	projectRepo *repository.ProjectRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		submissionRepo: submissionRepo,
		projectRepo:    projectRepo,
		logger:         logger,
	}
}

// Get computes the dashboard summary on every call
func (s *DashboardService) Get(ctx context.Context) (*domain.DashboardDTO, error) {
	totalContacts, err := s.submissionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count contact submissions: %w", err)
	}
	newContacts, err := s.submissionRepo.CountByStatus(ctx, domain.ContactStatusNew)
	if err != nil {
		return nil, fmt.Errorf("failed to count new contact submissions: %w", err)
	}
	recentContacts, err := s.submissionRepo.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent contact submissions: %w", err)
	}

	totalProjects, err := s.projectRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	activeProjects, err := s.projectRepo.CountByStatuses(ctx, domain.ActiveProjectStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to count active projects: %w", err)
	}
	recentProjects, err := s.projectRepo.Recent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent projects: %w", err)
	}

	dashboard := &domain.DashboardDTO{
		ContactStats:   domain.ContactStatsDTO{Total: totalContacts, New: newContacts},
		RecentContacts: make([]domain.ContactSubmissionSummaryDTO, len(recentContacts)),
		ProjectStats:   domain.ProjectStatsDTO{Total: totalProjects, Active: activeProjects},
		RecentProjects: make([]domain.DashboardProjectDTO, len(recentProjects)),
	}
	for i := range recentContacts {
		dashboard.RecentContacts[i] = mapper.ToContactSubmissionSummaryDTO(&recentContacts[i])
	}
	for i := range recentProjects {
		dashboard.RecentProjects[i] = mapper.ToDashboardProjectDTO(&recentProjects[i])
	}

	return dashboard, nil
}
