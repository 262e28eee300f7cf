package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all projects from the database
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByUser returns all projects owned by a user, newest first
func (r *ProjectRepo) FindByUser(userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// SetTitle persists the selected topic without touching the poll surface
func (r *ProjectRepo) SetTitle(id uuid.UUID, title string) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":      title,
			"updated_at": time.Now(),
		}).Error
}

// SetOutline persists the generated outline without touching the poll surface
func (r *ProjectRepo) SetOutline(id uuid.UUID, outline []models.OutlineChapter) error {
	payload, err := json.Marshal(outline)
	if err != nil {
		return err
	}
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"outline":    datatypes.JSON(payload),
			"updated_at": time.Now(),
		}).Error
}

// SetContent persists the aggregated content snapshot and image list without
// touching the poll surface
func (r *ProjectRepo) SetContent(id uuid.UUID, snapshot []models.ContentSnapshot, images []string) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"content":    datatypes.JSON(payload),
			"images":     datatypes.NewJSONSlice(images),
			"updated_at": time.Now(),
		}).Error
}

// UpdateStatus writes status, progress and current step in a single
// statement so a poller never observes a torn checkpoint
func (r *ProjectRepo) UpdateStatus(id uuid.UUID, status string, progress int, step string) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              status,
			"generation_progress": progress,
			"current_step":        step,
			"updated_at":          time.Now(),
		}).Error
}

// FailProject marks a project failed with a user-facing reason. Progress is
// left at its last checkpoint
func (r *ProjectRepo) FailProject(id uuid.UUID, reason string) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       models.ProjectStatusFailed,
			"current_step": reason,
			"updated_at":   time.Now(),
		}).Error
}

// CompleteProject marks a project completed only if no concurrent worker
// already did, and reports whether this caller won
func (r *ProjectRepo) CompleteProject(id uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Project{}).
		Where("id = ? AND status <> ?", id, models.ProjectStatusCompleted).
		Updates(map[string]any{
			"status":              models.ProjectStatusCompleted,
			"generation_progress": 100,
			"current_step":        "completed",
			"updated_at":          time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ResetForRegeneration clears all generated artifacts of a project and puts
// it back into pending inside one transaction
func (r *ProjectRepo) ResetForRegeneration(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Chapter{},
			&models.Translation{},
			&models.Mockup{},
			&models.Export{},
		} {
			if err := tx.Where("project_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Project{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":              models.ProjectStatusPending,
				"generation_progress": 0,
				"current_step":        "",
				"outline":             nil,
				"content":             nil,
				"images":              nil,
				"updated_at":          time.Now(),
			}).Error
	})
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, id).Error
}
