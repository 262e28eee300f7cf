package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Product mockup types built from chapter imagery.
const (
	MockupType3D      = "3d"
	MockupTypeMobile  = "mobile"
	MockupTypeDesktop = "desktop"
)

// Marketing mockup types built from the cover image.
const (
	MockupTypeTabletOffice = "tablet_office"
	MockupTypeBook3D       = "book_3d"
	MockupTypeMultiDevice  = "multi_device"
)

// Mockup is a single rendered product or marketing visual for a project.
type Mockup struct {
	ID        uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID      `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	Type      string         `json:"type" db:"type" gorm:"type:text;not null"`
	ImageURL  string         `json:"imageUrl" db:"image_url" gorm:"type:text;not null"`
	Metadata  datatypes.JSON `json:"metadata,omitempty" db:"metadata" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// MockupMetadata records the book context the mockup was rendered for.
type MockupMetadata struct {
	Title       string    `json:"title"`
	Style       string    `json:"style"`
	GeneratedAt time.Time `json:"generatedAt"`
}
