package service_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/service"
	"github.com/straye-as/facility-api/internal/storage"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services bundles every service over one test database and a local store
type services struct {
	db        *gorm.DB
	storeDir  string
	store     *storage.LocalStorage
	mailer    *recordingMailer
	client    *service.ClientService
	location  *service.LocationService
	project   *service.ProjectService
	activity  *service.ActivityTypeService
	timeEntry *service.TimeEntryService
	material  *service.MaterialService
	note      *service.NoteService
	file      *service.FileService
	contact   *service.ContactSubmissionService
	dashboard *service.DashboardService
	report    *service.ReportService
}

const testMaxUploadBytes = 64

func setupServices(t *testing.T) *services {
	t.Helper()

	db := testutil.SetupTestDB(t)
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	logger := zap.NewNop()
	mailer := &recordingMailer{}

	clientRepo := repository.NewClientRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	activityTypeRepo := repository.NewActivityTypeRepository(db)
	submissionRepo := repository.NewContactSubmissionRepository(db)

	return &services{
		db:        db,
		storeDir:  dir,
		store:     store,
		mailer:    mailer,
		client:    service.NewClientService(clientRepo, locationRepo, store, logger),
		location:  service.NewLocationService(locationRepo, clientRepo, store, logger),
		project:   service.NewProjectService(projectRepo, locationRepo, activityTypeRepo, store, logger),
		activity:  service.NewActivityTypeService(activityTypeRepo, logger),
		timeEntry: service.NewTimeEntryService(repository.NewTimeEntryRepository(db), projectRepo, activityTypeRepo, logger),
		material:  service.NewMaterialService(repository.NewMaterialRepository(db), projectRepo, logger),
		note:      service.NewNoteService(repository.NewNoteRepository(db), projectRepo, logger),
		file:      service.NewFileService(repository.NewFileRepository(db), projectRepo, store, testMaxUploadBytes, logger),
		contact:   service.NewContactSubmissionService(submissionRepo, mailer, "admin@example.com", logger),
		dashboard: service.NewDashboardService(submissionRepo, projectRepo, logger),
		report:    service.NewReportService(projectRepo, logger),
	}
}

// storeBlob writes a blob directly to the test store
func (s *services) storeBlob(t *testing.T, key string) {
	t.Helper()
	full := filepath.Join(s.storeDir, filepath.FromSlash(key))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte("blob"), 0644))
}

func (s *services) blobExists(key string) bool {
	_, err := os.Stat(filepath.Join(s.storeDir, filepath.FromSlash(key)))
	return err == nil
}

type sentMail struct {
	template  string
	recipient string
	data      map[string]string
}

type recordingMailer struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

func (m *recordingMailer) Send(ctx context.Context, templateID, recipient string, data map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{template: templateID, recipient: recipient, data: data})
	return m.err
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
