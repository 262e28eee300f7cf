package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupFrontendRoutes sets up all routes with authentication
func setupFrontendRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		//r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// User Handler endpoints
		r.Post("/users", handlers.userHandler.upsertUser())
		r.Get("/user/{userID}", handlers.userHandler.getUser())

		// API Config Handler endpoints
		r.Get("/api-configs", handlers.apiConfigHandler.getAPIConfigs())
		r.Post("/api-configs", handlers.apiConfigHandler.createAPIConfig())
		r.Put("/api-config/{configID}", handlers.apiConfigHandler.updateAPIConfig())
		r.Delete("/api-config/{configID}", handlers.apiConfigHandler.deleteAPIConfig())

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())
		r.Get("/project/{projectID}/exports", handlers.projectHandler.getExports())

		// Generation Handler endpoints
		r.Post("/projects/generate", handlers.generationHandler.startAutopilot())
		r.Post("/projects/manual", handlers.generationHandler.createManualProject())
		r.Post("/project/{projectID}/manual/generate-chapter", handlers.generationHandler.generateManualChapter())
		r.Get("/project/{projectID}/status", handlers.generationHandler.getStatus())
		r.Post("/project/{projectID}/regenerate", handlers.generationHandler.regenerate())
		r.Post("/project/{projectID}/mockups", handlers.generationHandler.generateMockups())
	})
}
