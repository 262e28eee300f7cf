package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Capability types an APIConfig can be bound to.
const (
	CapabilityReasoning      = "reasoning"
	CapabilityTextGeneration = "text_generation"
	CapabilityImage          = "image_generation"
	CapabilityTranslation    = "translation"
)

// ValidCapabilityType reports whether t names a known capability type.
func ValidCapabilityType(t string) bool {
	switch t {
	case CapabilityReasoning, CapabilityTextGeneration, CapabilityImage, CapabilityTranslation:
		return true
	}
	return false
}

// APIConfig is a per-user provider configuration for one capability type.
// When a user has no active config for a type, the process-wide default
// configuration is used instead.
type APIConfig struct {
	ID        uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID    uuid.UUID      `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	Name      string         `json:"name" db:"name" gorm:"type:text;not null"`
	Type      string         `json:"type" db:"type" gorm:"type:text;not null;index"`
	APIKey    string         `json:"apiKey" db:"api_key" gorm:"type:text;not null"`
	BaseURL   *string        `json:"baseUrl,omitempty" db:"base_url" gorm:"type:text"`
	Model     *string        `json:"model,omitempty" db:"model" gorm:"type:text"`
	IsActive  bool           `json:"isActive" db:"is_active" gorm:"type:boolean;not null;default:true"`
	Metadata  datatypes.JSON `json:"metadata,omitempty" db:"metadata" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
