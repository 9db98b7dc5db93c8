package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityTypeRepository struct {
	db *gorm.DB
}

func NewActivityTypeRepository(db *gorm.DB) *ActivityTypeRepository {
	return &ActivityTypeRepository{db: db}
}

func (r *ActivityTypeRepository) Create(ctx context.Context, activityType *domain.ActivityType) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(activityType).Error
}

func (r *ActivityTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActivityType, error) {
	var activityType domain.ActivityType
	err := r.db.WithContext(ctx).First(&activityType, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &activityType, nil
}

func (r *ActivityTypeRepository) Update(ctx context.Context, activityType *domain.ActivityType) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(activityType).Error
}

func (r *ActivityTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ActivityType{}, "id = ?", id).Error
}

// List returns activity types ordered by name, optionally only active ones
func (r *ActivityTypeRepository) List(ctx context.Context, activeOnly bool) ([]domain.ActivityType, error) {
	var activityTypes []domain.ActivityType
	query := r.db.WithContext(ctx).Model(&domain.ActivityType{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC, id ASC").Find(&activityTypes).Error
	return activityTypes, err
}

// CountTimeEntries returns how many time entries reference the activity type
func (r *ActivityTypeRepository) CountTimeEntries(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.TimeEntry{}).Where("activity_type_id = ?", id).Count(&count).Error
	return count, err
}
