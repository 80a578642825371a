package attachment

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file uploaded to a request. The bytes live in object storage.
type Attachment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID    uuid.UUID `gorm:"type:uuid;not null;index" json:"request_id"`
	FileName     string    `gorm:"size:255;not null" json:"file_name"`
	ObjectKey    string    `gorm:"size:512;not null;uniqueIndex" json:"-"`
	ContentType  string    `gorm:"size:100" json:"content_type"`
	Size         int64     `gorm:"not null" json:"size"`
	UploadedByID uint      `gorm:"not null" json:"uploaded_by_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
