package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/facility-api/internal/database"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SetupTestDB opens a private in-memory sqlite database with foreign keys on,
// runs the gorm migrations (including the activity type seed) and closes it
// when the test ends.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Date returns a gorm date for yyyy-mm-dd
func Date(t *testing.T, s string) datatypes.Date {
	t.Helper()
	parsed, err := time.Parse(domain.DateLayout, s)
	require.NoError(t, err)
	return datatypes.Date(parsed)
}

// CreateTestClient creates a client with the given name
func CreateTestClient(t *testing.T, db *gorm.DB, name string) *domain.Client {
	t.Helper()
	client := &domain.Client{
		Name:          name,
		ContactPerson: "Jan Jansen",
		Email:         "info@example.com",
		Phone:         "0201234567",
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

// CreateTestLocation creates an office location for clientID
func CreateTestLocation(t *testing.T, db *gorm.DB, clientID uuid.UUID, name string) *domain.Location {
	t.Helper()
	location := &domain.Location{
		ClientID:     clientID,
		Name:         name,
		Address:      "Damrak 1",
		PostalCode:   "1012 LG",
		City:         "Amsterdam",
		BuildingType: domain.BuildingTypeOffice,
	}
	require.NoError(t, db.Create(location).Error)
	return location
}

// CreateTestProject creates a maintenance project in status quote at locationID
func CreateTestProject(t *testing.T, db *gorm.DB, locationID uuid.UUID, title string) *domain.Project {
	t.Helper()
	project := &domain.Project{
		LocationID: locationID,
		Title:      title,
		Type:       domain.ProjectTypeMaintenance,
		Status:     domain.ProjectStatusQuote,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

// CreateTestActivityType creates an active activity type with the given rate
func CreateTestActivityType(t *testing.T, db *gorm.DB, name string, rate int64) *domain.ActivityType {
	t.Helper()
	activityType := &domain.ActivityType{
		Name:              name,
		DefaultHourlyRate: decimal.NewFromInt(rate),
		IsActive:          true,
	}
	require.NoError(t, db.Create(activityType).Error)
	return activityType
}

// CreateTestTimeEntry books hours at rate on projectID
func CreateTestTimeEntry(t *testing.T, db *gorm.DB, projectID, activityTypeID uuid.UUID, hours, rate string) *domain.TimeEntry {
	t.Helper()
	entry := &domain.TimeEntry{
		ProjectID:      projectID,
		ActivityTypeID: activityTypeID,
		Hours:          decimal.RequireFromString(hours),
		HourlyRate:     decimal.RequireFromString(rate),
		Date:           Date(t, "2025-03-01"),
	}
	require.NoError(t, db.Create(entry).Error)
	return entry
}

// CreateTestMaterial adds a material line to projectID
func CreateTestMaterial(t *testing.T, db *gorm.DB, projectID uuid.UUID, quantity, unitCost string) *domain.ProjectMaterial {
	t.Helper()
	material := &domain.ProjectMaterial{
		ProjectID: projectID,
		Name:      "Kabel",
		Quantity:  decimal.RequireFromString(quantity),
		Unit:      "m",
		UnitCost:  decimal.RequireFromString(unitCost),
		Date:      Date(t, "2025-03-01"),
	}
	require.NoError(t, db.Create(material).Error)
	return material
}

// CreateTestFile records a file on projectID stored at path
func CreateTestFile(t *testing.T, db *gorm.DB, projectID uuid.UUID, path string) *domain.ProjectFile {
	t.Helper()
	file := &domain.ProjectFile{
		ProjectID:      projectID,
		Name:           uuid.NewString() + ".pdf",
		OriginalName:   "offerte.pdf",
		Path:           path,
		MimeType:       "application/pdf",
		Size:           4,
		UploadedByID:   uuid.New(),
		UploadedByName: "Test User",
	}
	require.NoError(t, db.Create(file).Error)
	return file
}

// CreateTestNote adds a note to projectID
func CreateTestNote(t *testing.T, db *gorm.DB, projectID uuid.UUID, content string) *domain.ProjectNote {
	t.Helper()
	note := &domain.ProjectNote{
		ProjectID:  projectID,
		AuthorID:   uuid.New(),
		AuthorName: "Test User",
		Content:    content,
	}
	require.NoError(t, db.Create(note).Error)
	return note
}

// CreateTestSubmission creates a contact submission in the given status
func CreateTestSubmission(t *testing.T, db *gorm.DB, name string, status domain.ContactStatus) *domain.ContactSubmission {
	t.Helper()
	submission := &domain.ContactSubmission{
		Name:    name,
		Email:   "klant@example.com",
		Subject: "Lekkage",
		Message: "Er lekt water in de kelder.",
		Status:  status,
	}
	require.NoError(t, db.Create(submission).Error)
	return submission
}
