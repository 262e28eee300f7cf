package models

import (
	"time"

	"github.com/google/uuid"
)

// Translation is one chapter's content rendered in a non-primary language.
// The translation fan-out creates exactly one per (chapter, target language).
type Translation struct {
	ID                uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID         uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	ChapterID         uuid.UUID `json:"chapterId" db:"chapter_id" gorm:"type:uuid;not null;uniqueIndex:idx_translations_chapter_language"`
	Language          string    `json:"language" db:"language" gorm:"type:text;not null;uniqueIndex:idx_translations_chapter_language"`
	Title             string    `json:"title" db:"title" gorm:"type:text;not null"`
	TranslatedContent string    `json:"translatedContent" db:"translated_content" gorm:"type:text;not null"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
