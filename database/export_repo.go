package database

import (
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/gorm"
)

type ExportRepo struct {
	db *gorm.DB
}

func NewExportRepo(db *gorm.DB) *ExportRepo {
	return &ExportRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ExportRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByProject returns a project's exports. An empty language returns
// exports for every language
func (r *ExportRepo) FindByProject(projectID uuid.UUID, language string) ([]*models.Export, error) {
	var exports []*models.Export
	query := r.db.Where("project_id = ?", projectID)
	if language != "" {
		query = query.Where("language = ?", language)
	}
	err := query.Order("created_at ASC").Find(&exports).Error
	return exports, err
}

// Add inserts a new export into the database
func (r *ExportRepo) Add(export *models.Export) error {
	return r.db.Create(export).Error
}

// Delete removes an export from the database by id
func (r *ExportRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Export{}, id).Error
}
