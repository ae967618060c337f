package dto

import (
	"time"

	"github.com/webplanner/webplanner-api/internal/models"
	"github.com/webplanner/webplanner-api/internal/utils"
)

// SubtaskDTO represents a subtask in API responses
type SubtaskDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// AttachmentDTO is the denormalized attachment pointer in API responses
type AttachmentDTO struct {
	FileID      string `json:"file_id"`
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	ContentType string `json:"content_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"owner_id"`
	Title       string         `json:"title"`
	Priority    int            `json:"priority"`
	DueDate     *time.Time     `json:"due_date"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Comment     string         `json:"comment"`
	Done        bool           `json:"done"`
	Subtasks    []SubtaskDTO   `json:"subtasks"`
	Attachment  *AttachmentDTO `json:"attachment,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TaskListItemDTO represents a task in list responses (minimal data)
type TaskListItemDTO struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Priority  int        `json:"priority"`
	DueDate   *time.Time `json:"due_date"`
	Done      bool       `json:"done"`
	CreatedAt time.Time  `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskListItemDTO        `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ViewListResponse represents the tasks of a single calendar view
type ViewListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
}

// Conversion functions

// ToSubtaskDTO converts a Subtask model to SubtaskDTO
func ToSubtaskDTO(subtask models.Subtask) SubtaskDTO {
	return SubtaskDTO{
		ID:    subtask.ID,
		Title: subtask.Title,
		Done:  subtask.Done,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Description: task.Description,
		Tags:        task.Tags,
		Comment:     task.Comment,
		Done:        task.Done,
		Subtasks:    make([]SubtaskDTO, 0, len(task.Subtasks)),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if dto.Tags == nil {
		dto.Tags = []string{}
	}

	for _, subtask := range task.Subtasks {
		dto.Subtasks = append(dto.Subtasks, ToSubtaskDTO(subtask))
	}

	// Include the attachment pointer only when one is set
	if task.HasAttachment() {
		dto.Attachment = &AttachmentDTO{
			FileID:      task.Attachment.FileID,
			Filename:    task.Attachment.Filename,
			URL:         task.Attachment.URL,
			ContentType: task.Attachment.ContentType,
			SizeBytes:   task.Attachment.SizeBytes,
		}
	}

	return dto
}

// ToTaskListItemDTO converts a Task model to TaskListItemDTO
func ToTaskListItemDTO(task models.Task) TaskListItemDTO {
	return TaskListItemDTO{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		DueDate:   task.DueDate,
		Done:      task.Done,
		CreatedAt: task.CreatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskListItemDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskListItemDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}

// ToViewListResponse converts the tasks of a calendar view
func ToViewListResponse(tasks []models.Task) ViewListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return ViewListResponse{Tasks: items}
}
