package database

import (
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/gorm"
)

type APIConfigRepo struct {
	db *gorm.DB
}

func NewAPIConfigRepo(db *gorm.DB) *APIConfigRepo {
	return &APIConfigRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *APIConfigRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all API configurations from the database
func (r *APIConfigRepo) FindAll() ([]*models.APIConfig, error) {
	var configs []*models.APIConfig
	err := r.db.Find(&configs).Error
	return configs, err
}

// FindByID returns an API configuration by its ID
func (r *APIConfigRepo) FindByID(id uuid.UUID) (*models.APIConfig, error) {
	var config models.APIConfig
	err := r.db.First(&config, id).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// FindByUser returns all API configurations owned by a user
func (r *APIConfigRepo) FindByUser(userID uuid.UUID) ([]*models.APIConfig, error) {
	var configs []*models.APIConfig
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&configs).Error
	return configs, err
}

// ActiveByUserAndType returns the most recently updated active configuration
// of the given capability type for a user, or gorm.ErrRecordNotFound
func (r *APIConfigRepo) ActiveByUserAndType(userID uuid.UUID, capability string) (*models.APIConfig, error) {
	var config models.APIConfig
	err := r.db.
		Where("user_id = ? AND type = ? AND is_active = ?", userID, capability, true).
		Order("updated_at DESC").
		First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// Add inserts a new API configuration into the database
func (r *APIConfigRepo) Add(config *models.APIConfig) error {
	return r.db.Create(config).Error
}

// Update updates an existing API configuration in the database
func (r *APIConfigRepo) Update(config *models.APIConfig) error {
	return r.db.Save(config).Error
}

// Delete removes an API configuration from the database by id
func (r *APIConfigRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.APIConfig{}, id).Error
}
