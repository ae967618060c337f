package dto

import (
	"fmt"
	"time"

	"github.com/webplanner/webplanner-api/internal/models"
)

// FileDTO represents upload metadata in API responses
type FileDTO struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToFileDTO converts a FileRecord to FileDTO, including the caller-facing
// retrieval path.
func ToFileDTO(record models.FileRecord) FileDTO {
	return FileDTO{
		ID:          record.ID,
		Filename:    record.Filename,
		URL:         fmt.Sprintf("/api/files/%s/download", record.ID),
		ContentType: record.ContentType,
		SizeBytes:   record.SizeBytes,
		CreatedAt:   record.CreatedAt,
	}
}
