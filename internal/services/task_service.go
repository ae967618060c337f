package services

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/webplanner/webplanner-api/internal/calendar"
	"github.com/webplanner/webplanner-api/internal/constants"
	"github.com/webplanner/webplanner-api/internal/models"
	"github.com/webplanner/webplanner-api/internal/repository"
	"github.com/webplanner/webplanner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidTaskID      = errors.New("invalid task id")
	ErrInvalidTitle       = errors.New("title must be between 1 and 200 characters")
	ErrInvalidPriority    = errors.New("priority must be between 1 and 5")
	ErrDescriptionTooLong = errors.New("description exceeds 5000 characters")
	ErrCommentTooLong     = errors.New("comment exceeds 2000 characters")
	ErrSubtaskNotFound    = errors.New("subtask not found")
	ErrSubtaskTitleEmpty  = errors.New("subtask title is required")
)

// TaskService handles task business logic. All operations take the
// authenticated owner's identity and never act on another owner's tasks:
// a missing id and a foreign id are reported identically as ErrTaskNotFound.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// AttachmentInput is a caller-supplied attachment pointer
type AttachmentInput struct {
	FileID      string
	Filename    string
	URL         string
	ContentType string
	SizeBytes   int64
}

// SubtaskInput is an initial subtask supplied at task creation
type SubtaskInput struct {
	Title string
	Done  bool
}

// CreateTaskInput represents input for creating a task. Owner, id, done and
// timestamps are deliberately not representable here; they are always
// assigned by this layer.
type CreateTaskInput struct {
	Title       string
	Priority    *int
	DueDate     *time.Time
	Description string
	Tags        []string
	Comment     string
	Subtasks    []SubtaskInput
	Attachment  *AttachmentInput
}

// UpdateTaskInput represents a partial update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title           *string
	Priority        *int
	DueDate         *time.Time
	ClearDueDate    bool
	Description     *string
	Tags            []string
	Comment         *string
	Done            *bool
	Attachment      *AttachmentInput
	ClearAttachment bool
}

// CreateTask validates the input, applies defaults, and persists a new task
// owned by the caller.
func (s *TaskService) CreateTask(ownerID string, input CreateTaskInput) (*models.Task, error) {
	// Limits count characters, not bytes
	if input.Title == "" || utf8.RuneCountInString(input.Title) > constants.TitleMaxLength {
		return nil, ErrInvalidTitle
	}
	if utf8.RuneCountInString(input.Description) > constants.DescriptionMaxLength {
		return nil, ErrDescriptionTooLong
	}
	if utf8.RuneCountInString(input.Comment) > constants.CommentMaxLength {
		return nil, ErrCommentTooLong
	}

	priority := constants.PriorityDefault
	if input.Priority != nil {
		if *input.Priority < constants.PriorityMin || *input.Priority > constants.PriorityMax {
			return nil, ErrInvalidPriority
		}
		priority = *input.Priority
	}

	tags := models.TagList{}
	if input.Tags != nil {
		tags = models.TagList(input.Tags)
	}

	subtasks := make([]models.Subtask, 0, len(input.Subtasks))
	for i, sub := range input.Subtasks {
		if sub.Title == "" {
			return nil, ErrSubtaskTitleEmpty
		}
		subtasks = append(subtasks, models.Subtask{
			Title:    sub.Title,
			Done:     sub.Done,
			Position: i,
		})
	}

	task := &models.Task{
		OwnerID:     ownerID,
		Title:       input.Title,
		Priority:    priority,
		DueDate:     input.DueDate,
		Description: input.Description,
		Tags:        tags,
		Comment:     input.Comment,
		Done:        false,
		Subtasks:    subtasks,
	}
	if input.Attachment != nil {
		task.Attachment = attachmentRef(input.Attachment)
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTask returns an owner's task with its subtask list
func (s *TaskService) GetTask(ownerID, taskID string) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, ErrInvalidTaskID
	}

	task, err := s.taskRepo.FindByID(ownerID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to an owner's task. The ownership check
// and the mutation are one conditional write; updated_at is bumped even when
// no other field changed.
func (s *TaskService) UpdateTask(ownerID, taskID string, input UpdateTaskInput) (*models.Task, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, ErrInvalidTaskID
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}

	if input.Title != nil {
		if *input.Title == "" || utf8.RuneCountInString(*input.Title) > constants.TitleMaxLength {
			return nil, ErrInvalidTitle
		}
		fields["title"] = *input.Title
	}
	if input.Priority != nil {
		if *input.Priority < constants.PriorityMin || *input.Priority > constants.PriorityMax {
			return nil, ErrInvalidPriority
		}
		fields["priority"] = *input.Priority
	}
	if input.ClearDueDate {
		fields["due_date"] = nil
	} else if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}
	if input.Description != nil {
		if utf8.RuneCountInString(*input.Description) > constants.DescriptionMaxLength {
			return nil, ErrDescriptionTooLong
		}
		fields["description"] = *input.Description
	}
	if input.Tags != nil {
		fields["tags"] = models.TagList(input.Tags)
	}
	if input.Comment != nil {
		if utf8.RuneCountInString(*input.Comment) > constants.CommentMaxLength {
			return nil, ErrCommentTooLong
		}
		fields["comment"] = *input.Comment
	}
	if input.Done != nil {
		fields["done"] = *input.Done
	}
	if input.ClearAttachment {
		clearAttachmentFields(fields)
	} else if input.Attachment != nil {
		ref := attachmentRef(input.Attachment)
		fields["attachment_file_id"] = ref.FileID
		fields["attachment_filename"] = ref.Filename
		fields["attachment_url"] = ref.URL
		fields["attachment_content_type"] = ref.ContentType
		fields["attachment_size_bytes"] = ref.SizeBytes
	}

	matched, err := s.taskRepo.UpdateFields(ownerID, taskID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if matched == 0 {
		return nil, ErrTaskNotFound
	}

	return s.GetTask(ownerID, taskID)
}

// DeleteTask removes an owner's task. Deleting the same task twice reports
// ErrTaskNotFound the second time.
func (s *TaskService) DeleteTask(ownerID, taskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return ErrInvalidTaskID
	}

	matched, err := s.taskRepo.Delete(ownerID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if matched == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// ListTasks returns the owner's tasks without a view filter, newest first
func (s *TaskService) ListTasks(ownerID string, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(ownerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// ListTasksByView returns the owner's tasks whose due date falls inside the
// calendar view anchored at anchorDate, ascending by due date. A malformed
// anchor or an unknown view kind yields an empty list, not an error; that is
// the established contract of this endpoint.
func (s *TaskService) ListTasksByView(ownerID, viewKind, anchorDate string) ([]models.Task, error) {
	anchor, err := calendar.ParseAnchor(anchorDate)
	if err != nil {
		return []models.Task{}, nil
	}

	start, end, ok := calendar.Resolve(calendar.ViewKind(viewKind), anchor)
	if !ok {
		return []models.Task{}, nil
	}

	tasks, err := s.taskRepo.ListDueBetween(ownerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by view: %w", err)
	}
	return tasks, nil
}

func attachmentRef(input *AttachmentInput) models.AttachmentRef {
	return models.AttachmentRef{
		FileID:      input.FileID,
		Filename:    input.Filename,
		URL:         input.URL,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
	}
}

func clearAttachmentFields(fields map[string]interface{}) {
	fields["attachment_file_id"] = ""
	fields["attachment_filename"] = ""
	fields["attachment_url"] = ""
	fields["attachment_content_type"] = ""
	fields["attachment_size_bytes"] = 0
}
