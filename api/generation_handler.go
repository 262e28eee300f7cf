package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/database"
	"github.com/pagepilot-ai/backend/errs"
	"github.com/pagepilot-ai/backend/models"
	"github.com/pagepilot-ai/backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type generationHandler struct {
	responder    Responder
	logger       zerolog.Logger
	db           database.Database
	orchestrator *services.Orchestrator
}

func newGenerationHandler(db database.Database, orchestrator *services.Orchestrator) generationHandler {
	logger := log.With().Str("handlerName", "generationHandler").Logger()

	return generationHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		db:           db,
		orchestrator: orchestrator,
	}
}

// StartAutopilotRequest kicks off a fully automated generation run
type StartAutopilotRequest struct {
	UserID          uuid.UUID `json:"userId"`
	Style           string    `json:"style"`
	PrimaryLanguage string    `json:"primaryLanguage"`
	TargetLanguages []string  `json:"targetLanguages"`
}

// ManualChapterRequest is one chapter brief in a manual project
type ManualChapterRequest struct {
	ChapterNumber int    `json:"chapterNumber"`
	Title         string `json:"title"`
	Instructions  string `json:"instructions"`
}

// CreateManualProjectRequest creates a project whose chapters are generated
// one at a time from user instructions
type CreateManualProjectRequest struct {
	UserID          uuid.UUID              `json:"userId"`
	Title           string                 `json:"title"`
	Style           string                 `json:"style"`
	PrimaryLanguage string                 `json:"primaryLanguage"`
	Chapters        []ManualChapterRequest `json:"chapters"`
}

// GenerateChapterRequest targets one instruction of a manual project
type GenerateChapterRequest struct {
	ChapterInstructionID uuid.UUID `json:"chapterInstructionId"`
}

// StatusResponse is the poll surface for a generation run
type StatusResponse struct {
	Status      string  `json:"status"`
	Progress    int     `json:"progress"`
	CurrentStep *string `json:"currentStep"`
}

// startAutopilot creates a project and starts the full generation pipeline
// @Summary Start autopilot generation
// @Description Creates a pending project and runs the full generation pipeline detached; poll the status endpoint for progress
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body StartAutopilotRequest true "Generation parameters"
// @Success 200 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid generation parameters"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /projects/generate [post]
func (h generationHandler) startAutopilot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartAutopilotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode generation request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.UserID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("userId"))
			return
		}
		if !models.ValidStyle(req.Style) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("style", "unknown visual style"))
			return
		}
		if req.PrimaryLanguage == "" {
			req.PrimaryLanguage = "en"
		}

		project := models.Project{
			UserID:          req.UserID,
			Title:           "Generating...",
			Style:           req.Style,
			Mode:            models.ModeAutopilot,
			Status:          models.ProjectStatusPending,
			PrimaryLanguage: req.PrimaryLanguage,
			TargetLanguages: datatypes.NewJSONSlice(req.TargetLanguages),
		}
		if err := h.db.ProjectRepo().Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		h.spawnAutopilot(project.ID, req.UserID, req.Style, req.PrimaryLanguage, req.TargetLanguages)

		h.responder.WriteJSON(w, project)
	}
}

// spawnAutopilot runs the pipeline detached with its own error boundary so a
// failure can never escape to the process level.
func (h generationHandler) spawnAutopilot(projectID, userID uuid.UUID, style, primaryLanguage string, targetLanguages []string) {
	go func() {
		if err := h.orchestrator.RunAutopilot(context.Background(), projectID, userID, style, primaryLanguage, targetLanguages); err != nil {
			h.orchestrator.Fail(projectID, err)
		}
	}()
}

// createManualProject creates a draft project with chapter instructions
// @Summary Create manual project
// @Description Creates a draft project and one instruction per requested chapter; chapters are generated individually
// @Tags Generation
// @Accept json
// @Produce json
// @Param request body CreateManualProjectRequest true "Manual project definition"
// @Success 200 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project definition"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating project"
// @Router /projects/manual [post]
func (h generationHandler) createManualProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateManualProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode manual project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.UserID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("userId"))
			return
		}
		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if !models.ValidStyle(req.Style) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("style", "unknown visual style"))
			return
		}
		if len(req.Chapters) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("chapters"))
			return
		}
		if req.PrimaryLanguage == "" {
			req.PrimaryLanguage = "en"
		}

		project := models.Project{
			UserID:          req.UserID,
			Title:           req.Title,
			Style:           req.Style,
			Mode:            models.ModeManual,
			Status:          models.ProjectStatusDraft,
			PrimaryLanguage: req.PrimaryLanguage,
		}
		if err := h.db.ProjectRepo().Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		for _, chapter := range req.Chapters {
			instruction := models.ChapterInstruction{
				ProjectID:    project.ID,
				Number:       chapter.ChapterNumber,
				Title:        chapter.Title,
				Instructions: chapter.Instructions,
				Status:       models.InstructionStatusDraft,
			}
			if err := h.db.InstructionRepo().Add(&instruction); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("create chapter instruction", "chapter instruction", err))
				return
			}
		}

		h.responder.WriteJSON(w, project)
	}
}

// generateManualChapter generates one chapter of a manual project
// @Summary Generate manual chapter
// @Description Starts detached generation for one chapter instruction; the final instruction to finish packages exports and completes the project
// @Tags Generation
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param request body GenerateChapterRequest true "Instruction to generate"
// @Success 200 {object} ProjectDetail "Project with generation started"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid request"
// @Failure 404 {object} ErrorResponse "Not Found - Project or instruction not found"
// @Router /project/{projectID}/manual/generate-chapter [post]
func (h generationHandler) generateManualChapter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		var req GenerateChapterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode generate chapter request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.ChapterInstructionID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("chapterInstructionId"))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		instruction, err := h.db.InstructionRepo().FindByID(req.ChapterInstructionID)
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && instruction.ProjectID != projectID) {
			h.responder.WriteError(w, errs.NewNotFoundError("chapter instruction not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find chapter instruction", "chapter instruction", err))
			return
		}

		if err := h.db.InstructionRepo().UpdateStatus(instruction.ID, models.InstructionStatusGenerating); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update chapter instruction", "chapter instruction", err))
			return
		}

		go func() {
			if err := h.orchestrator.RunManualChapter(context.Background(), projectID, project.UserID, instruction, project.Style, project.PrimaryLanguage); err != nil {
				h.orchestrator.FailInstruction(instruction.ID, err)
			}
		}()

		// The client expects the same hydrated shape the project endpoint
		// serves, with the targeted instruction already marked generating.
		detail, err := loadProjectDetail(h.db, project)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}

// getStatus returns the poll surface for a generation run
// @Summary Get generation status
// @Description Returns status, progress percent and the user-facing current step for a project
// @Tags Generation
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} StatusResponse "Current generation status"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID}/status [get]
func (h generationHandler) getStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		h.responder.WriteJSON(w, StatusResponse{
			Status:      project.Status,
			Progress:    project.GenerationProgress,
			CurrentStep: project.CurrentStep,
		})
	}
}

// regenerate restarts the autopilot pipeline from zero for an existing project
// @Summary Regenerate project
// @Description Deletes prior generated artifacts, resets the project to pending and reruns the full pipeline
// @Tags Generation
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]interface{} "Regeneration started"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID}/regenerate [post]
func (h generationHandler) regenerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if project.Status == models.ProjectStatusGenerating {
			h.responder.WriteError(w, errs.NewConflictError("project is already generating"))
			return
		}

		// Restart from zero: prior artifacts are replaced, not appended to
		if err := h.db.ProjectRepo().ResetForRegeneration(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("reset project", "project", err))
			return
		}

		h.spawnAutopilot(projectID, project.UserID, project.Style, project.PrimaryLanguage, []string(project.TargetLanguages))

		h.responder.WriteJSON(w, map[string]interface{}{
			"message":   "Regeneration started",
			"projectId": projectID,
		})
	}
}

// generateMockups creates the three marketing mockups for a finished book
// @Summary Generate marketing mockups
// @Description Renders tablet, 3D book and multi-device mockups from the project's cover image
// @Tags Generation
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]interface{} "Mockups generated"
// @Failure 400 {object} ErrorResponse "Bad Request - No cover image available"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID}/mockups [post]
func (h generationHandler) generateMockups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.db.ProjectRepo().FindByID(projectID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.orchestrator.GenerateMarketingMockups(r.Context(), projectID, project.UserID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"success": true,
			"message": "Marketing mockups generated",
		})
	}
}
