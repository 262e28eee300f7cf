package models

import (
	"time"

	"github.com/google/uuid"
)

// Instruction lifecycle states for the manual pipeline.
const (
	InstructionStatusDraft      = "draft"
	InstructionStatusGenerating = "generating"
	InstructionStatusGenerated  = "generated"
	InstructionStatusFailed     = "failed"
)

// ChapterInstruction is a user-authored brief for one chapter in manual mode.
// The manual pipeline turns each instruction into a chapter independently.
type ChapterInstruction struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID    uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_instructions_project_number"`
	Number       int       `json:"number" db:"number" gorm:"type:integer;not null;uniqueIndex:idx_instructions_project_number"`
	Title        string    `json:"title" db:"title" gorm:"type:text;not null"`
	Instructions string    `json:"instructions" db:"instructions" gorm:"type:text;not null"`
	Status       string    `json:"status" db:"status" gorm:"type:text;not null;default:draft"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
