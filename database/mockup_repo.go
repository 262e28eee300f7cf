package database

import (
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/gorm"
)

type MockupRepo struct {
	db *gorm.DB
}

func NewMockupRepo(db *gorm.DB) *MockupRepo {
	return &MockupRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *MockupRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByProject returns all mockups for a project
func (r *MockupRepo) FindByProject(projectID uuid.UUID) ([]*models.Mockup, error) {
	var mockups []*models.Mockup
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&mockups).Error
	return mockups, err
}

// Add inserts a new mockup into the database
func (r *MockupRepo) Add(mockup *models.Mockup) error {
	return r.db.Create(mockup).Error
}

// Delete removes a mockup from the database by id
func (r *MockupRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Mockup{}, id).Error
}
