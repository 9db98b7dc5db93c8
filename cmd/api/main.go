package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/straye-as/facility-api/docs"
	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/database"
	"github.com/straye-as/facility-api/internal/http/handler"
	"github.com/straye-as/facility-api/internal/http/middleware"
	"github.com/straye-as/facility-api/internal/http/router"
	"github.com/straye-as/facility-api/internal/logger"
	"github.com/straye-as/facility-api/internal/mail"
	"github.com/straye-as/facility-api/internal/repository"
	"github.com/straye-as/facility-api/internal/service"
	"github.com/straye-as/facility-api/internal/storage"
	"go.uber.org/zap"
)

// @title Facility Back-office API
// @version 1.0
// @description Back-office API for facility maintenance clients, locations, projects and contact requests

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	if host := os.Getenv("SWAGGER_HOST"); host != "" {
		docs.SwaggerInfo.Host = host
	} else {
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("Database migrated")
	}

	fileStorage, err := storage.NewStorage(ctx, &cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	mailer := mail.NewMailer(&cfg.Mail, log)

	// Initialize repositories
	clientRepo := repository.NewClientRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	activityTypeRepo := repository.NewActivityTypeRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	fileRepo := repository.NewFileRepository(db)
	submissionRepo := repository.NewContactSubmissionRepository(db)

	// Initialize services
	clientService := service.NewClientService(clientRepo, locationRepo, fileStorage, log)
	locationService := service.NewLocationService(locationRepo, clientRepo, fileStorage, log)
	projectService := service.NewProjectService(projectRepo, locationRepo, activityTypeRepo, fileStorage, log)
	activityTypeService := service.NewActivityTypeService(activityTypeRepo, log)
	timeEntryService := service.NewTimeEntryService(timeEntryRepo, projectRepo, activityTypeRepo, log)
	materialService := service.NewMaterialService(materialRepo, projectRepo, log)
	noteService := service.NewNoteService(noteRepo, projectRepo, log)
	fileService := service.NewFileService(fileRepo, projectRepo, fileStorage, cfg.Storage.MaxUploadBytes(), log)
	submissionService := service.NewContactSubmissionService(submissionRepo, mailer, cfg.Mail.AdminAddress, log)
	dashboardService := service.NewDashboardService(submissionRepo, projectRepo, log)
	reportService := service.NewReportService(projectRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	handlers := &router.Handlers{
		Health:       handler.NewHealthHandler(db, log),
		Auth:         handler.NewAuthHandler(),
		Client:       handler.NewClientHandler(clientService, log),
		Location:     handler.NewLocationHandler(locationService, log),
		Project:      handler.NewProjectHandler(projectService, reportService, log),
		TimeEntry:    handler.NewTimeEntryHandler(timeEntryService, log),
		Material:     handler.NewMaterialHandler(materialService, log),
		Note:         handler.NewNoteHandler(noteService, log),
		File:         handler.NewFileHandler(fileService, log),
		ActivityType: handler.NewActivityTypeHandler(activityTypeService, log),
		Contact:      handler.NewContactHandler(submissionService, log),
		Dashboard:    handler.NewDashboardHandler(dashboardService, log),
	}

	rt := router.NewRouter(cfg, log, authMiddleware, rateLimiter, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("Error closing database connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
