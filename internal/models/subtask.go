package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subtask has no lifecycle of its own; every mutation goes through an
// ownership check on the parent task.
type Subtask struct {
	ID        string         `gorm:"type:varchar(36);primarykey" json:"id"`
	TaskID    string         `gorm:"type:varchar(36);not null;index" json:"task_id"`
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`
	Done      bool           `gorm:"not null;default:false" json:"done"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}

func (s *Subtask) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
