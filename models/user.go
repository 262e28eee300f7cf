package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record behind the always-logged-in identity stand-in.
// The client supplies its own identity; the backend upserts it on first contact.
type User struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email       string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Username    string    `json:"username" db:"username" gorm:"type:text;not null"`
	DisplayName *string   `json:"displayName,omitempty" db:"display_name" gorm:"type:text"`
	PhotoURL    *string   `json:"photoURL,omitempty" db:"photo_url" gorm:"type:text"`
	Role        string    `json:"role" db:"role" gorm:"type:text;not null;default:user"`
	IsAdmin     bool      `json:"isAdmin" db:"is_admin" gorm:"type:boolean;not null;default:false"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
