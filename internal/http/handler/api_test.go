package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/domain"
	"github.com/straye-as/facility-api/internal/http/handler"
	"github.com/straye-as/facility-api/internal/http/middleware"
	"github.com/straye-as/facility-api/internal/http/router"
	"github.com/straye-as/facility-api/internal/mail"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/service"
	"github.com/straye-as/facility-api/internal/storage"
	"github.com/straye-as/facility-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	testAPIKey         = "test-admin-key"
	testMaxUploadBytes = 1024
)

// api is the full HTTP stack over an in-memory database
type api struct {
	db      *gorm.DB
	handler http.Handler
}

func setupAPI(t *testing.T) *api {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.Server.RequestTimeout = 30
	cfg.ApiKey.Value = testAPIKey
	cfg.Auth.JWTSecret = "handler-test-secret"
	cfg.Storage.Mode = "local"
	cfg.Storage.LocalBasePath = t.TempDir()
	cfg.Storage.PublicBaseURL = "/uploads"

	store, err := storage.NewLocalStorage(cfg.Storage.LocalBasePath, cfg.Storage.PublicBaseURL)
	require.NoError(t, err)

	clientRepo := repository.NewClientRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	activityTypeRepo := repository.NewActivityTypeRepository(db)
	submissionRepo := repository.NewContactSubmissionRepository(db)

	clientService := service.NewClientService(clientRepo, locationRepo, store, logger)
	locationService := service.NewLocationService(locationRepo, clientRepo, store, logger)
	projectService := service.NewProjectService(projectRepo, locationRepo, activityTypeRepo, store, logger)
	reportService := service.NewReportService(projectRepo, logger)
	timeEntryService := service.NewTimeEntryService(repository.NewTimeEntryRepository(db), projectRepo, activityTypeRepo, logger)
	materialService := service.NewMaterialService(repository.NewMaterialRepository(db), projectRepo, logger)
	noteService := service.NewNoteService(repository.NewNoteRepository(db), projectRepo, logger)
	fileService := service.NewFileService(repository.NewFileRepository(db), projectRepo, store, testMaxUploadBytes, logger)
	activityTypeService := service.NewActivityTypeService(activityTypeRepo, logger)
	submissionService := service.NewContactSubmissionService(submissionRepo, mail.NewLogMailer(logger), "admin@example.com", logger)
	dashboardService := service.NewDashboardService(submissionRepo, projectRepo, logger)

	handlers := &router.Handlers{
		Health:       handler.NewHealthHandler(db, logger),
		Auth:         handler.NewAuthHandler(),
		Client:       handler.NewClientHandler(clientService, logger),
		Location:     handler.NewLocationHandler(locationService, logger),
		Project:      handler.NewProjectHandler(projectService, reportService, logger),
		TimeEntry:    handler.NewTimeEntryHandler(timeEntryService, logger),
		Material:     handler.NewMaterialHandler(materialService, logger),
		Note:         handler.NewNoteHandler(noteService, logger),
		File:         handler.NewFileHandler(fileService, logger),
		ActivityType: handler.NewActivityTypeHandler(activityTypeService, logger),
		Contact:      handler.NewContactHandler(submissionService, logger),
		Dashboard:    handler.NewDashboardHandler(dashboardService, logger),
	}

	rt := router.NewRouter(
		cfg,
		logger,
		auth.NewMiddleware(cfg, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		handlers,
	)

	return &api{db: db, handler: rt.Setup()}
}

// do sends an authenticated request; body is JSON encoded unless it is an io.Reader
func (a *api) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := newRequest(t, method, path, body)
	req.Header.Set("x-api-key", testAPIKey)
	return a.serve(req)
}

func (a *api) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func newRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), target), rr.Body.String())
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) domain.APIError {
	t.Helper()
	var apiErr domain.APIError
	decode(t, rr, &apiErr)
	return apiErr
}
