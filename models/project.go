package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Visual styles a book can be generated in.
const (
	StyleModernMag  = "modern_mag"
	StyleRecipeBook = "recipe_book"
	StyleMinimalist = "minimalist"
	StyleVibrant    = "vibrant"
)

// Project lifecycle states. Transitions are one-directional within a run;
// only an explicit regeneration resets a project to pending.
const (
	ProjectStatusPending    = "pending"
	ProjectStatusDraft      = "draft"
	ProjectStatusGenerating = "generating"
	ProjectStatusCompleted  = "completed"
	ProjectStatusFailed     = "failed"
)

// Generation modes.
const (
	ModeAutopilot = "autopilot"
	ModeManual    = "manual"
)

// ValidStyle reports whether style names a supported visual style.
func ValidStyle(style string) bool {
	switch style {
	case StyleModernMag, StyleRecipeBook, StyleMinimalist, StyleVibrant:
		return true
	}
	return false
}

// Project is the unit of generation work. Status, progress and current step
// form the poll surface; they are always written together.
type Project struct {
	ID                 uuid.UUID                    `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID             uuid.UUID                    `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	Title              string                       `json:"title" db:"title" gorm:"type:text;not null"`
	Style              string                       `json:"style" db:"style" gorm:"type:text;not null"`
	Mode               string                       `json:"mode" db:"mode" gorm:"type:text;not null;default:autopilot"`
	Status             string                       `json:"status" db:"status" gorm:"type:text;not null;default:pending;index"`
	GenerationProgress int                          `json:"generationProgress" db:"generation_progress" gorm:"type:integer;not null;default:0"`
	CurrentStep        *string                      `json:"currentStep,omitempty" db:"current_step" gorm:"type:text"`
	PrimaryLanguage    string                       `json:"primaryLanguage" db:"primary_language" gorm:"type:text;not null;default:en"`
	TargetLanguages    datatypes.JSONSlice[string]  `json:"targetLanguages,omitempty" db:"target_languages" gorm:"type:jsonb"`
	Outline            datatypes.JSON               `json:"outline,omitempty" db:"outline" gorm:"type:jsonb"`
	Content            datatypes.JSON               `json:"content,omitempty" db:"content" gorm:"type:jsonb"`
	Images             datatypes.JSONSlice[string]  `json:"images,omitempty" db:"images" gorm:"type:jsonb"`
	CreatedAt          time.Time                    `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time                    `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Chapters     []Chapter            `json:"chapters,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Instructions []ChapterInstruction `json:"chapterInstructions,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Translations []Translation        `json:"translations,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Mockups      []Mockup             `json:"mockups,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Exports      []Export             `json:"exports,omitempty" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

// OutlineChapter is one stub in the generated book outline.
type OutlineChapter struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// ContentSnapshot is the aggregated title/content pair stored on the project
// after chapter generation completes.
type ContentSnapshot struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
