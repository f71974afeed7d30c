// Package api exposes dataset profiling and cleaning over HTTP
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Priyuuuuu/smartdata-standardization/internal"
	"github.com/Priyuuuuu/smartdata-standardization/internal/service"
)

// Config holds HTTP application configuration
type Config struct {
	Port           string
	MaxUploadBytes int64
}

// App represents the HTTP application
type App struct {
	router         *chi.Mux
	service        *service.DatasetService
	logger         *internal.Logger
	port           string
	maxUploadBytes int64
}

// NewApp creates a new HTTP application
func NewApp(svc *service.DatasetService, logger *internal.Logger, config Config) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	app := &App{
		router:         chi.NewRouter(),
		service:        svc,
		logger:         logger,
		port:           config.Port,
		maxUploadBytes: config.MaxUploadBytes,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Post("/api/datasets", a.handleUpload)
	a.router.Get("/api/datasets", a.handleList)
	a.router.Get("/api/datasets/{id}", a.handleGet)
	a.router.Delete("/api/datasets/{id}", a.handleDelete)

	a.router.Get("/api/datasets/{id}/profile", a.handleProfile)
	a.router.Get("/api/datasets/{id}/suggestions", a.handleSuggestions)
	a.router.Post("/api/datasets/{id}/clean", a.handleClean)
	a.router.Post("/api/datasets/{id}/ask", a.handleAsk)
	a.router.Get("/api/datasets/{id}/export", a.handleExport)
	a.router.Get("/api/datasets/{id}/report", a.handleReport)
	a.router.Get("/api/datasets/{id}/charts", a.handleCharts)
}

// Handler returns the HTTP handler, used by tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("starting server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
