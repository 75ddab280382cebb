// Package ui exposes the analysis pipeline over HTTP: one endpoint runs the
// whole pipeline for a pair of uploaded tables, the rest serve archived runs
// and their exports.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lipidflow/app"
	"lipidflow/domain/run"
	"lipidflow/ports"
)

// App represents the HTTP application
type App struct {
	router   *chi.Mux
	service  *app.AnalysisService
	runs     ports.RunRepository
	defaults run.Params
}

// Config holds HTTP application configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application around an analysis service.
func NewApp(service *app.AnalysisService, runs ports.RunRepository, defaults run.Params) *App {
	a := &App{
		router:   chi.NewRouter(),
		service:  service,
		runs:     runs,
		defaults: defaults,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealthz)

	a.router.Post("/api/analyze", a.handleAnalyze)
	a.router.Get("/api/runs", a.handleListRuns)
	a.router.Get("/api/runs/{id}", a.handleGetRun)
	a.router.Get("/api/runs/{id}/flows.csv", a.handleFlowsCSV)
	a.router.Get("/api/runs/{id}/summary.csv", a.handleSummaryCSV)
	a.router.Get("/api/runs/{id}/sankey.html", a.handleSankeyHTML)
	a.router.Get("/api/runs/{id}/report.html", a.handleReportHTML)
}

// Router returns the configured handler for serving.
func (a *App) Router() http.Handler {
	return a.router
}
