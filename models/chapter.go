package models

import (
	"time"

	"github.com/google/uuid"
)

// Chapter is generated prose for one outline stub in one language. Chapters
// are immutable once written; regeneration deletes and recreates them.
type Chapter struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_chapters_project_number_language"`
	Number    int       `json:"number" db:"number" gorm:"type:integer;not null;uniqueIndex:idx_chapters_project_number_language"`
	Language  string    `json:"language" db:"language" gorm:"type:text;not null;default:en;uniqueIndex:idx_chapters_project_number_language"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Content   string    `json:"content" db:"content" gorm:"type:text;not null"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
