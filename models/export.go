package models

import (
	"time"

	"github.com/google/uuid"
)

// Export formats. Every language gets one export per format, all three
// pointing at the same rendered HTML document family.
const (
	ExportFormatEPUB = "epub"
	ExportFormatPDF  = "pdf"
	ExportFormatZIP  = "zip"
)

// Export is a downloadable artifact for one language/format pair.
type Export struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	Format    string    `json:"format" db:"format" gorm:"type:text;not null"`
	Language  string    `json:"language" db:"language" gorm:"type:text;not null;default:en"`
	FileName  string    `json:"fileName" db:"file_name" gorm:"type:text;not null"`
	FileURL   string    `json:"fileUrl" db:"file_url" gorm:"type:text;not null"`
	FileSize  int64     `json:"fileSize" db:"file_size" gorm:"type:bigint;not null;default:0"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
