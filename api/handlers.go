package api

import (
	"github.com/pagepilot-ai/backend/database"
	"github.com/pagepilot-ai/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, orchestrator *services.Orchestrator) *routeHandlers {
	return &routeHandlers{
		userHandler:       newUserHandler(database.UserRepo()),
		apiConfigHandler:  newAPIConfigHandler(database.APIConfigRepo()),
		projectHandler:    newProjectHandler(database),
		generationHandler: newGenerationHandler(database, orchestrator),
	}
}
