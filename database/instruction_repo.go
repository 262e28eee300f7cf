package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/gorm"
)

type InstructionRepo struct {
	db *gorm.DB
}

func NewInstructionRepo(db *gorm.DB) *InstructionRepo {
	return &InstructionRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *InstructionRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByProject returns a project's chapter instructions ordered by number
func (r *InstructionRepo) FindByProject(projectID uuid.UUID) ([]*models.ChapterInstruction, error) {
	var instructions []*models.ChapterInstruction
	err := r.db.Where("project_id = ?", projectID).Order("number ASC").Find(&instructions).Error
	return instructions, err
}

// FindByID returns a chapter instruction by its ID
func (r *InstructionRepo) FindByID(id uuid.UUID) (*models.ChapterInstruction, error) {
	var instruction models.ChapterInstruction
	err := r.db.First(&instruction, id).Error
	if err != nil {
		return nil, err
	}
	return &instruction, nil
}

// Add inserts a new chapter instruction into the database
func (r *InstructionRepo) Add(instruction *models.ChapterInstruction) error {
	return r.db.Create(instruction).Error
}

// Update updates an existing chapter instruction in the database
func (r *InstructionRepo) Update(instruction *models.ChapterInstruction) error {
	return r.db.Save(instruction).Error
}

// UpdateStatus moves a chapter instruction through its lifecycle
func (r *InstructionRepo) UpdateStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.ChapterInstruction{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// Delete removes a chapter instruction from the database by id
func (r *InstructionRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ChapterInstruction{}, id).Error
}
