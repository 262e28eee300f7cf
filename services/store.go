package services

import (
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
)

// Store is the persistence surface the generation pipelines run against.
// database.Database satisfies it; tests substitute an in-memory fake.
type Store interface {
	GetProject(id uuid.UUID) (*models.Project, error)

	// The Set* writers update their columns only, so an in-flight pipeline
	// can never rewrite the poll surface from a stale snapshot.
	SetProjectTitle(id uuid.UUID, title string) error
	SetProjectOutline(id uuid.UUID, outline []models.OutlineChapter) error
	SetProjectContent(id uuid.UUID, snapshot []models.ContentSnapshot, images []string) error

	UpdateProjectStatus(id uuid.UUID, status string, progress int, step string) error
	FailProject(id uuid.UUID, reason string) error
	CompleteProject(id uuid.UUID) (bool, error)

	AddChapter(chapter *models.Chapter) error
	ChaptersByProject(projectID uuid.UUID, language string) ([]*models.Chapter, error)

	InstructionsByProject(projectID uuid.UUID) ([]*models.ChapterInstruction, error)
	UpdateInstructionStatus(id uuid.UUID, status string) error

	AddTranslation(translation *models.Translation) error
	TranslationsByProject(projectID uuid.UUID) ([]*models.Translation, error)

	AddMockup(mockup *models.Mockup) error
	AddExport(export *models.Export) error

	// ActiveAPIConfig returns nil without error when the user has no active
	// configuration for the capability.
	ActiveAPIConfig(userID uuid.UUID, capability string) (*models.APIConfig, error)
}
