package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/straye-as/facility-api/internal/auth"
	"github.com/straye-as/facility-api/internal/config"
	"github.com/straye-as/facility-api/internal/http/handler"
	"github.com/straye-as/facility-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/straye-as/facility-api/docs" // Import generated swagger docs
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Client       *handler.ClientHandler
	Location     *handler.LocationHandler
	Project      *handler.ProjectHandler
	TimeEntry    *handler.TimeEntryHandler
	Material     *handler.MaterialHandler
	Note         *handler.NoteHandler
	File         *handler.FileHandler
	ActivityType *handler.ActivityTypeHandler
	Contact      *handler.ContactHandler
	Dashboard    *handler.DashboardHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	handlers       *Handlers
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	handlers *Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		handlers:       handlers,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()
	h := rt.handlers

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health checks (liveness and readiness checks)
	r.Get("/health", h.Health.Live)
	r.Get("/health/db", h.Health.Database)
	r.Get("/health/ready", h.Health.Ready)

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	rt.mountLocalStorage(r)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(rt.cfg.Server.RequestTimeoutDuration()))

		// Public contact form
		r.With(rt.rateLimiter.LimitContact).Post("/contact", h.Contact.Submit)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/dashboard", h.Dashboard.Get)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", h.Client.List)
				r.Post("/", h.Client.Create)
				r.Get("/options", h.Client.Options)
				r.Get("/{id}", h.Client.GetByID)
				r.Put("/{id}", h.Client.Update)
				r.Delete("/{id}", h.Client.Delete)
			})

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", h.Location.List)
				r.Post("/", h.Location.Create)
				r.Get("/{id}", h.Location.GetByID)
				r.Put("/{id}", h.Location.Update)
				r.Delete("/{id}", h.Location.Delete)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Project.List)
				r.Post("/", h.Project.Create)
				r.Get("/export", h.Project.Export)
				r.Get("/{id}", h.Project.GetByID)
				r.Put("/{id}", h.Project.Update)
				r.Delete("/{id}", h.Project.Delete)

				// Sub-resources, scoped to the project
				r.Post("/{id}/time-entries", h.TimeEntry.Create)
				r.Put("/{id}/time-entries/{entryId}", h.TimeEntry.Update)
				r.Delete("/{id}/time-entries/{entryId}", h.TimeEntry.Delete)

				r.Post("/{id}/materials", h.Material.Create)
				r.Put("/{id}/materials/{materialId}", h.Material.Update)
				r.Delete("/{id}/materials/{materialId}", h.Material.Delete)

				r.Post("/{id}/notes", h.Note.Create)
				r.Delete("/{id}/notes/{noteId}", h.Note.Delete)

				r.Post("/{id}/files", h.File.Upload)
				r.Get("/{id}/files/{fileId}", h.File.Download)
				r.Delete("/{id}/files/{fileId}", h.File.Delete)
			})

			r.Route("/activity-types", func(r chi.Router) {
				r.Get("/", h.ActivityType.List)
				r.Post("/", h.ActivityType.Create)
				r.Put("/{id}", h.ActivityType.Update)
				r.Delete("/{id}", h.ActivityType.Delete)
			})

			r.Route("/contact-submissions", func(r chi.Router) {
				r.Get("/", h.Contact.List)
				r.Get("/{id}", h.Contact.GetByID)
				r.Patch("/{id}", h.Contact.Update)
				r.Delete("/{id}", h.Contact.Delete)
			})
		})
	})

	return r
}

// mountLocalStorage serves the local blob directory under its public base
// path so file URLs resolve. Cloud backends serve their own URLs.
func (rt *Router) mountLocalStorage(r chi.Router) {
	storageCfg := rt.cfg.Storage
	if (storageCfg.Mode != "local" && storageCfg.Mode != "") || !strings.HasPrefix(storageCfg.PublicBaseURL, "/") {
		return
	}

	prefix := strings.TrimSuffix(storageCfg.PublicBaseURL, "/")
	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(storageCfg.LocalBasePath)))
	r.Get(prefix+"/*", func(w http.ResponseWriter, r *http.Request) {
		// no directory listings
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})

	rt.logger.Info("Serving local storage",
		zap.String("path", prefix),
		zap.String("base_path", storageCfg.LocalBasePath),
	)
}
