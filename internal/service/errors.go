package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when an operation is refused because of related data
	ErrConflict = errors.New("resource conflict")

	// ErrFileTooLarge is returned when an upload exceeds the configured ceiling
	ErrFileTooLarge = errors.New("file too large")
)

// Resource specific errors. Each wraps ErrNotFound or ErrConflict.
var (
	ErrClientNotFound            error = kindError{"client not found", ErrNotFound}
	ErrLocationNotFound          error = kindError{"location not found", ErrNotFound}
	ErrProjectNotFound           error = kindError{"project not found", ErrNotFound}
	ErrActivityTypeNotFound      error = kindError{"activity type not found", ErrNotFound}
	ErrTimeEntryNotFound         error = kindError{"time entry not found", ErrNotFound}
	ErrMaterialNotFound          error = kindError{"material not found", ErrNotFound}
	ErrNoteNotFound              error = kindError{"note not found", ErrNotFound}
	ErrFileNotFound              error = kindError{"file not found", ErrNotFound}
	ErrContactSubmissionNotFound error = kindError{"contact submission not found", ErrNotFound}

	// ErrActivityTypeInUse is returned when deleting an activity type still referenced by time entries
	ErrActivityTypeInUse error = kindError{"activity type is in use by time entries", ErrConflict}
)

type kindError struct {
	msg  string
	kind error
}

func (e kindError) Error() string { return e.msg }

func (e kindError) Unwrap() error { return e.kind }

// lookupError turns gorm.ErrRecordNotFound into notFound and wraps anything
// else with action
func lookupError(err error, notFound error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
