package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.ProjectNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// GetByProject loads a note only when it belongs to projectID
func (r *NoteRepository) GetByProject(ctx context.Context, projectID, id uuid.UUID) (*domain.ProjectNote, error) {
	var note domain.ProjectNote
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProjectNote{}, "id = ?", id).Error
}
