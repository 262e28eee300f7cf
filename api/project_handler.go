package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/database"
	"github.com/pagepilot-ai/backend/errs"
	"github.com/pagepilot-ai/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newProjectHandler(db database.Database) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// ProjectDetail is a project hydrated with every generated artifact
type ProjectDetail struct {
	models.Project
	Chapters            []*models.Chapter            `json:"chapters"`
	ChapterInstructions []*models.ChapterInstruction `json:"chapterInstructions"`
	Translations        []*models.Translation        `json:"translations"`
	Mockups             []*models.Mockup             `json:"mockups"`
	Exports             []*models.Export             `json:"exports"`
}

// newProjectDetail assembles the hydrated response shape. Instructions only
// exist for manual projects; autopilot responses carry an empty list.
func newProjectDetail(project *models.Project, chapters []*models.Chapter, instructions []*models.ChapterInstruction, translations []*models.Translation, mockups []*models.Mockup, exports []*models.Export) ProjectDetail {
	if project.Mode != models.ModeManual || instructions == nil {
		instructions = []*models.ChapterInstruction{}
	}

	return ProjectDetail{
		Project:             *project,
		Chapters:            chapters,
		ChapterInstructions: instructions,
		Translations:        translations,
		Mockups:             mockups,
		Exports:             exports,
	}
}

// loadProjectDetail fetches every artifact a project owns and builds the
// hydrated response.
func loadProjectDetail(db database.Database, project *models.Project) (ProjectDetail, error) {
	chapters, err := db.ChapterRepo().FindByProject(project.ID, "")
	if err != nil {
		return ProjectDetail{}, wrapDatabaseError("find chapters", "chapters", err)
	}

	mockups, err := db.MockupRepo().FindByProject(project.ID)
	if err != nil {
		return ProjectDetail{}, wrapDatabaseError("find mockups", "mockups", err)
	}

	exports, err := db.ExportRepo().FindByProject(project.ID, "")
	if err != nil {
		return ProjectDetail{}, wrapDatabaseError("find exports", "exports", err)
	}

	translations, err := db.TranslationRepo().FindByProject(project.ID)
	if err != nil {
		return ProjectDetail{}, wrapDatabaseError("find translations", "translations", err)
	}

	var instructions []*models.ChapterInstruction
	if project.Mode == models.ModeManual {
		instructions, err = db.InstructionRepo().FindByProject(project.ID)
		if err != nil {
			return ProjectDetail{}, wrapDatabaseError("find chapter instructions", "chapter instructions", err)
		}
	}

	return newProjectDetail(project, chapters, instructions, translations, mockups, exports), nil
}

// getAllProjects lists a user's projects, newest first
// @Summary Get all projects
// @Description Retrieves all projects owned by a user
// @Tags Projects
// @Accept json
// @Produce json
// @Param userId query string true "User ID" format(uuid)
// @Success 200 {array} models.Project "Projects"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or invalid userId"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("userId"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing or invalid userId"))
			return
		}

		projects, err := h.db.ProjectRepo().FindByUser(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a project with all its generated artifacts
// @Summary Get project
// @Description Retrieves a project hydrated with chapters, instructions, translations, mockups and exports
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} ProjectDetail "Project with artifacts"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching project"
// @Router /project/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
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

		detail, err := loadProjectDetail(h.db, project)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}

// getExports lists a project's export artifacts
// @Summary Get exports
// @Description Retrieves a project's exports, optionally filtered by language
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param language query string false "Language filter"
// @Success 200 {array} models.Export "Exports"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching exports"
// @Router /project/{projectID}/exports [get]
func (h projectHandler) getExports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		exports, err := h.db.ExportRepo().FindByProject(projectID, r.URL.Query().Get("language"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find exports", "exports", err))
			return
		}

		h.responder.WriteJSON(w, exports)
	}
}

// deleteProject deletes a project and everything it owns
// @Summary Delete project
// @Description Deletes a project; chapters, translations, mockups and exports cascade with it
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid projectID"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if _, err := h.db.ProjectRepo().FindByID(projectID); errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		} else if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.db.ProjectRepo().Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}
