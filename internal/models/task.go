package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentRef is the denormalized pointer from a task to an uploaded file.
// Cleared columns are written as empty strings rather than NULLs; a zero
// FileID means no attachment.
type AttachmentRef struct {
	FileID      string `gorm:"type:varchar(36)" json:"file_id"`
	Filename    string `gorm:"type:varchar(255)" json:"filename"`
	URL         string `gorm:"type:varchar(512)" json:"url"`
	ContentType string `gorm:"type:varchar(100)" json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

type Task struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	OwnerID     string         `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Priority    int            `gorm:"not null;default:3" json:"priority"`
	DueDate     *time.Time     `gorm:"index" json:"due_date"`
	Description string         `gorm:"type:text" json:"description"`
	Tags        TagList        `gorm:"type:text" json:"tags"`
	Comment     string         `gorm:"type:text" json:"comment"`
	Done        bool           `gorm:"not null;default:false" json:"done"`
	Attachment  AttachmentRef  `gorm:"embedded;embeddedPrefix:attachment_" json:"attachment"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    User      `gorm:"foreignKey:OwnerID" json:"-"`
	Subtasks []Subtask `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// HasAttachment reports whether the task currently points at a file.
func (t *Task) HasAttachment() bool {
	return t.Attachment.FileID != ""
}
