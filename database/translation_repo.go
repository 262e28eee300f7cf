package database

import (
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/gorm"
)

type TranslationRepo struct {
	db *gorm.DB
}

func NewTranslationRepo(db *gorm.DB) *TranslationRepo {
	return &TranslationRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *TranslationRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByProject returns all translations for a project
func (r *TranslationRepo) FindByProject(projectID uuid.UUID) ([]*models.Translation, error) {
	var translations []*models.Translation
	err := r.db.Where("project_id = ?", projectID).Order("language ASC").Find(&translations).Error
	return translations, err
}

// FindByProjectAndLanguage returns a project's translated chapters in one
// language, in chapter order
func (r *TranslationRepo) FindByProjectAndLanguage(projectID uuid.UUID, language string) ([]*models.Translation, error) {
	var translations []*models.Translation
	err := r.db.Where("project_id = ? AND language = ?", projectID, language).Order("created_at ASC").Find(&translations).Error
	return translations, err
}

// Add inserts a new translation into the database
func (r *TranslationRepo) Add(translation *models.Translation) error {
	return r.db.Create(translation).Error
}

// Delete removes a translation from the database by id
func (r *TranslationRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Translation{}, id).Error
}
