package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
)

// orderNewFirst sorts unhandled submissions before everything else
const orderNewFirst = "CASE WHEN status = 'new' THEN 0 ELSE 1 END"

type ContactSubmissionRepository struct {
	db *gorm.DB
}

func NewContactSubmissionRepository(db *gorm.DB) *ContactSubmissionRepository {
	return &ContactSubmissionRepository{db: db}
}

func (r *ContactSubmissionRepository) Create(ctx context.Context, submission *domain.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *ContactSubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContactSubmission, error) {
	var submission domain.ContactSubmission
	err := r.db.WithContext(ctx).First(&submission, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *ContactSubmissionRepository) Update(ctx context.Context, submission *domain.ContactSubmission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *ContactSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ContactSubmission{}, "id = ?", id).Error
}

// MarkAsRead moves a submission from new to read. The status condition in the
// WHERE clause keeps read_at from being stamped twice by concurrent readers.
// It reports whether a row changed.
func (r *ContactSubmissionRepository) MarkAsRead(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.ContactSubmission{}).
		Where("id = ? AND status = ?", id, domain.ContactStatusNew).
		Updates(map[string]interface{}{
			"status":     domain.ContactStatusRead,
			"read_at":    now,
			"updated_at": now,
		})
	return result.RowsAffected > 0, result.Error
}

// List returns a page of submissions with new ones first, then newest first
func (r *ContactSubmissionRepository) List(ctx context.Context, page int, status domain.ContactStatus) ([]domain.ContactSubmission, int64, error) {
	var submissions []domain.ContactSubmission
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ContactSubmission{})

	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query, page, ContactSubmissionPageSize).
		Order(orderNewFirst).
		Order("created_at DESC, id DESC").
		Find(&submissions).Error
	return submissions, total, err
}

// StatusCounts returns the number of submissions per status over the whole
// table, plus "all"
func (r *ContactSubmissionRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	counts, err := countGrouped(r.db.WithContext(ctx).Model(&domain.ContactSubmission{}), "status")
	if err != nil {
		return nil, err
	}

	result := map[string]int64{"all": 0}
	for _, status := range domain.AllContactStatuses {
		result[string(status)] = counts[string(status)]
		result["all"] += counts[string(status)]
	}
	return result, nil
}

func (r *ContactSubmissionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ContactSubmission{}).Count(&count).Error
	return count, err
}

func (r *ContactSubmissionRepository) CountByStatus(ctx context.Context, status domain.ContactStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ContactSubmission{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Recent returns the newest submissions regardless of status
func (r *ContactSubmissionRepository) Recent(ctx context.Context, limit int) ([]domain.ContactSubmission, error) {
	var submissions []domain.ContactSubmission
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&submissions).Error
	return submissions, err
}
