package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileRecord is the metadata half of an upload; the bytes live in the blob
// store under StoragePath.
type FileRecord struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerID     string         `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Filename    string         `gorm:"type:varchar(255);not null" json:"filename"`
	StoragePath string         `gorm:"type:varchar(512);not null" json:"-"`
	ContentType string         `gorm:"type:varchar(100);not null" json:"content_type"`
	SizeBytes   int64          `gorm:"not null" json:"size_bytes"`
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (f *FileRecord) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
