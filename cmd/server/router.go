package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tedsearch/ted-search-api/internal/api"
	apiMiddleware "github.com/tedsearch/ted-search-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	searchHandler := api.NewSearchHandler(app.searchService)
	taskHandler := api.NewTaskHandler(app.taskRunner, app.taskRegistry, app.taskAggregator)

	r.Post("/search", searchHandler.Search)
	// Wildcard rather than a named parameter: publication numbers may
	// contain slashes and must reach the handler intact.
	r.Get("/notice/*", searchHandler.GetNotice)
	r.Get("/health", searchHandler.Health)

	r.Post("/process", taskHandler.SubmitTask)
	r.Get("/process/{task_id}", taskHandler.GetTask)
	r.Get("/statistics", taskHandler.GetStatistics)

	return r
}
