package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// parseDate parses a validated YYYY-MM-DD string
func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// parseOptionalDate returns nil for an empty string
func parseOptionalDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// removeBlobs deletes stored files after their records are gone. Failures
// leave an orphaned blob and are only logged.
func removeBlobs(ctx context.Context, store storage.Storage, logger *zap.Logger, paths []string) {
	for _, p := range paths {
		if err := store.Delete(ctx, p); err != nil {
			logger.Warn("failed to delete blob",
				zap.String("path", p),
				zap.Error(err),
			)
		}
	}
}

// parseID parses a validated UUID field, reporting failures against field
func parseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "Must be a valid UUID")
	}
	return id, nil
}
