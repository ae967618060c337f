package services

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/webplanner/webplanner-api/internal/constants"
	"github.com/webplanner/webplanner-api/internal/models"
	"github.com/webplanner/webplanner-api/internal/repository"
)

// SubtaskService mutates the embedded subtask list of a single task. The
// parent task's ownership is re-verified inside every call; nothing about a
// foreign task is revealed, including whether it exists.
type SubtaskService struct {
	subtaskRepo repository.SubtaskRepository
}

// NewSubtaskService creates a new SubtaskService
func NewSubtaskService(subtaskRepo repository.SubtaskRepository) *SubtaskService {
	return &SubtaskService{subtaskRepo: subtaskRepo}
}

// UpdateSubtaskInput represents a partial subtask update
type UpdateSubtaskInput struct {
	Title *string
	Done  *bool
}

// AddSubtask appends a new subtask to an owner's task
func (s *SubtaskService) AddSubtask(ownerID, taskID, title string) (*models.Subtask, error) {
	if _, err := uuid.Parse(taskID); err != nil {
		return nil, ErrInvalidTaskID
	}
	if title == "" || utf8.RuneCountInString(title) > constants.TitleMaxLength {
		return nil, ErrSubtaskTitleEmpty
	}

	subtask := &models.Subtask{
		Title: title,
		Done:  false,
	}

	if err := s.subtaskRepo.Append(ownerID, taskID, subtask); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to add subtask: %w", err)
	}

	return subtask, nil
}

// UpdateSubtask applies the provided fields to a subtask of an owner's task.
// A subtask id that does not exist inside an otherwise valid task reports
// the same not-found as a foreign task.
func (s *SubtaskService) UpdateSubtask(ownerID, taskID, subtaskID string, input UpdateSubtaskInput) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return ErrInvalidTaskID
	}
	if _, err := uuid.Parse(subtaskID); err != nil {
		return ErrSubtaskNotFound
	}

	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if input.Title != nil {
		if *input.Title == "" || utf8.RuneCountInString(*input.Title) > constants.TitleMaxLength {
			return ErrSubtaskTitleEmpty
		}
		fields["title"] = *input.Title
	}
	if input.Done != nil {
		fields["done"] = *input.Done
	}

	if err := s.subtaskRepo.UpdateFields(ownerID, taskID, subtaskID, fields); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			return ErrSubtaskNotFound
		}
		return fmt.Errorf("failed to update subtask: %w", err)
	}

	return nil
}

// DeleteSubtask removes a subtask from an owner's task
func (s *SubtaskService) DeleteSubtask(ownerID, taskID, subtaskID string) error {
	if _, err := uuid.Parse(taskID); err != nil {
		return ErrInvalidTaskID
	}
	if _, err := uuid.Parse(subtaskID); err != nil {
		return ErrSubtaskNotFound
	}

	if err := s.subtaskRepo.Delete(ownerID, taskID, subtaskID); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			return ErrSubtaskNotFound
		}
		return fmt.Errorf("failed to delete subtask: %w", err)
	}

	return nil
}
