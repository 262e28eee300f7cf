package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/gorm"
)

// Domain-level accessors used by the generation pipelines. These keep the
// pipelines decoupled from individual repositories.

func (d Database) GetProject(id uuid.UUID) (*models.Project, error) {
	return d.projectRepo.FindByID(id)
}

func (d Database) SetProjectTitle(id uuid.UUID, title string) error {
	return d.projectRepo.SetTitle(id, title)
}

func (d Database) SetProjectOutline(id uuid.UUID, outline []models.OutlineChapter) error {
	return d.projectRepo.SetOutline(id, outline)
}

func (d Database) SetProjectContent(id uuid.UUID, snapshot []models.ContentSnapshot, images []string) error {
	return d.projectRepo.SetContent(id, snapshot, images)
}

func (d Database) UpdateProjectStatus(id uuid.UUID, status string, progress int, step string) error {
	return d.projectRepo.UpdateStatus(id, status, progress, step)
}

func (d Database) FailProject(id uuid.UUID, reason string) error {
	return d.projectRepo.FailProject(id, reason)
}

func (d Database) CompleteProject(id uuid.UUID) (bool, error) {
	return d.projectRepo.CompleteProject(id)
}

func (d Database) AddChapter(chapter *models.Chapter) error {
	return d.chapterRepo.Add(chapter)
}

func (d Database) ChaptersByProject(projectID uuid.UUID, language string) ([]*models.Chapter, error) {
	return d.chapterRepo.FindByProject(projectID, language)
}

func (d Database) InstructionsByProject(projectID uuid.UUID) ([]*models.ChapterInstruction, error) {
	return d.instructionRepo.FindByProject(projectID)
}

func (d Database) UpdateInstructionStatus(id uuid.UUID, status string) error {
	return d.instructionRepo.UpdateStatus(id, status)
}

func (d Database) AddTranslation(translation *models.Translation) error {
	return d.translationRepo.Add(translation)
}

func (d Database) TranslationsByProject(projectID uuid.UUID) ([]*models.Translation, error) {
	return d.translationRepo.FindByProject(projectID)
}

func (d Database) AddMockup(mockup *models.Mockup) error {
	return d.mockupRepo.Add(mockup)
}

func (d Database) AddExport(export *models.Export) error {
	return d.exportRepo.Add(export)
}

// ActiveAPIConfig treats a missing configuration as a normal outcome so
// callers can fall back to platform defaults.
func (d Database) ActiveAPIConfig(userID uuid.UUID, capability string) (*models.APIConfig, error) {
	config, err := d.apiConfigRepo.ActiveByUserAndType(userID, capability)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return config, nil
}
