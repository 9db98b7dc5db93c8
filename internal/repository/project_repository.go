package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

// GetByID loads a project with its location and client only
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Location.Client").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetDetail loads a project with every child collection. Time entries and
// materials are ordered by date, notes and files newest first.
func (r *ProjectRepository) GetDetail(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).
		Preload("Location.Client").
		Preload("TimeEntries", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC, created_at DESC, id DESC")
		}).
		Preload("TimeEntries.ActivityType").
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("date DESC, created_at DESC, id DESC")
		}).
		Preload("Notes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// Delete removes the project and, through the cascade, all its child rows
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error
}

// filtered applies search and filters. Search matches the title, the
// location name and the client name.
func (r *ProjectRepository) filtered(ctx context.Context, filters *domain.ProjectFilters) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&domain.Project{})
	if filters == nil {
		return query
	}

	if filters.Search != "" {
		searchPattern := likePattern(filters.Search)
		query = query.Where(
			ilike("title")+" OR location_id IN (?) OR location_id IN (?)",
			searchPattern,
			r.db.Model(&domain.Location{}).Select("id").Where(ilike("name"), searchPattern),
			r.db.Model(&domain.Location{}).Select("id").Where("client_id IN (?)",
				r.db.Model(&domain.Client{}).Select("id").Where(ilike("name"), searchPattern),
			),
		)
	}

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}

	if filters.ClientID != nil {
		query = query.Where("location_id IN (?)",
			r.db.Model(&domain.Location{}).Select("id").Where("client_id = ?", *filters.ClientID),
		)
	}

	return query
}

// List returns a page of projects, newest first, with location and client
func (r *ProjectRepository) List(ctx context.Context, page int, filters *domain.ProjectFilters) ([]domain.Project, int64, error) {
	var projects []domain.Project
	var total int64

	query := r.filtered(ctx, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, ProjectPageSize).
		Preload("Location.Client").
		Order("created_at DESC, id DESC").
		Find(&projects).Error
	return projects, total, err
}

// ListForExport returns every project matching filters with the child rows
// needed to compute financials
func (r *ProjectRepository) ListForExport(ctx context.Context, filters *domain.ProjectFilters) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.filtered(ctx, filters).
		Preload("Location.Client").
		Preload("TimeEntries").
		Preload("Materials").
		Order("created_at DESC, id DESC").
		Find(&projects).Error
	return projects, err
}

// StatusCounts returns the number of projects per status over the whole
// table, plus "all"
func (r *ProjectRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	counts, err := countGrouped(r.db.WithContext(ctx).Model(&domain.Project{}), "status")
	if err != nil {
		return nil, err
	}

	result := map[string]int64{"all": 0}
	for _, status := range domain.AllProjectStatuses {
		result[string(status)] = counts[string(status)]
		result["all"] += counts[string(status)]
	}
	return result, nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Count(&count).Error
	return count, err
}

// CountByStatuses counts projects in any of statuses
func (r *ProjectRepository) CountByStatuses(ctx context.Context, statuses []domain.ProjectStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Where("status IN ?", statuses).Count(&count).Error
	return count, err
}

// Recent returns the newest projects with location and client
func (r *ProjectRepository) Recent(ctx context.Context, limit int) ([]domain.Project, error) {
	var projects []domain.Project
	err := r.db.WithContext(ctx).
		Preload("Location.Client").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// FilePaths returns the storage paths of all files on the project
func (r *ProjectRepository) FilePaths(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&domain.ProjectFile{}).
		Where("project_id = ?", projectID).
		Pluck("path", &paths).Error
	return paths, err
}
