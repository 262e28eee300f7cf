package database

import (
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/models"
	"gorm.io/gorm"
)

type ChapterRepo struct {
	db *gorm.DB
}

func NewChapterRepo(db *gorm.DB) *ChapterRepo {
	return &ChapterRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ChapterRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByProject returns a project's chapters ordered by number. An empty
// language returns chapters in every language
func (r *ChapterRepo) FindByProject(projectID uuid.UUID, language string) ([]*models.Chapter, error) {
	var chapters []*models.Chapter
	query := r.db.Where("project_id = ?", projectID)
	if language != "" {
		query = query.Where("language = ?", language)
	}
	err := query.Order("number ASC").Find(&chapters).Error
	return chapters, err
}

// FindByID returns a chapter by its ID
func (r *ChapterRepo) FindByID(id uuid.UUID) (*models.Chapter, error) {
	var chapter models.Chapter
	err := r.db.First(&chapter, id).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// Add inserts a new chapter into the database
func (r *ChapterRepo) Add(chapter *models.Chapter) error {
	return r.db.Create(chapter).Error
}

// Delete removes a chapter from the database by id
func (r *ChapterRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Chapter{}, id).Error
}
