// Package ui exposes the JSON HTTP API: recommendation, catalog
// maintenance, and recommendation history.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"modeladvisor/app"
	"modeladvisor/internal"
)

// App represents the HTTP application
type App struct {
	router    *chi.Mux
	recommend *app.RecommendService
	catalog   *app.CatalogService
	history   *app.HistoryService
	logger    *internal.Logger
}

// NewApp creates the HTTP application around the three services.
func NewApp(recommend *app.RecommendService, catalog *app.CatalogService, history *app.HistoryService, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &App{
		router:    chi.NewRouter(),
		recommend: recommend,
		catalog:   catalog,
		history:   history,
		logger:    logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Post("/api/recommend", a.handleRecommend)

	a.router.Get("/api/models", a.handleListModels)
	a.router.Post("/api/models", a.handleUpsertModel)
	a.router.Get("/api/models/stats", a.handleModelStats)

	a.router.Get("/api/recommendations", a.handleListRecommendations)
	a.router.Get("/api/recommendations/{id}", a.handleGetRecommendation)
}

// Router returns the configured handler for the server to mount.
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
