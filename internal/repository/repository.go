package repository

import (
	"errors"
	"time"

	"github.com/webplanner/webplanner-api/internal/models"
	"github.com/webplanner/webplanner-api/internal/utils"
)

// ErrNoMatch is returned when an owner-scoped conditional write matched zero
// rows: the target either does not exist or belongs to another owner. The two
// cases are deliberately indistinguishable.
var ErrNoMatch = errors.New("repository: no matching row for owner")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Delete deletes a user
	Delete(id string) error
}

// SessionRepository defines the interface for per-user session rows
type SessionRepository interface {
	// Rotate upserts the user's session with a fresh token, invalidating any
	// previously issued token in the same write
	Rotate(userID, token string) error

	// FindByToken resolves a token to its session
	FindByToken(token string) (*models.Session, error)

	// DeleteByUser removes the user's session
	DeleteByUser(userID string) error
}

// TaskRepository defines the interface for owner-scoped task data access.
// Every mutation matches on (task id AND owner id) in a single conditional
// write; a zero-row match surfaces as ErrNoMatch or a zero count.
type TaskRepository interface {
	// Create creates a new task together with its initial subtasks
	Create(task *models.Task) error

	// FindByID finds an owner's task with subtasks preloaded in order
	FindByID(ownerID, taskID string) (*models.Task, error)

	// List retrieves an owner's tasks, newest first, paginated
	List(ownerID string, params utils.PaginationParams) ([]models.Task, int64, error)

	// ListDueBetween retrieves an owner's tasks with a due date in
	// [from, to), ascending by due date. Tasks without a due date never match.
	ListDueBetween(ownerID string, from, to time.Time) ([]models.Task, error)

	// UpdateFields applies a column map to an owner's task and reports the
	// number of rows matched
	UpdateFields(ownerID, taskID string, fields map[string]interface{}) (int64, error)

	// Delete removes an owner's task and its subtasks, reporting the number
	// of task rows matched
	Delete(ownerID, taskID string) (int64, error)

	// ClearAttachment blanks the attachment pointer on every task of this
	// owner referencing the given file id
	ClearAttachment(ownerID, fileID string) error
}

// SubtaskRepository defines the interface for embedded subtask mutations.
// Ownership of the parent task is re-verified inside every call.
type SubtaskRepository interface {
	// Append adds a subtask to the end of an owner's task list
	Append(ownerID, taskID string, subtask *models.Subtask) error

	// UpdateFields applies a column map to a subtask of an owner's task
	UpdateFields(ownerID, taskID, subtaskID string, fields map[string]interface{}) error

	// Delete removes a subtask from an owner's task
	Delete(ownerID, taskID, subtaskID string) error
}

// FileRepository defines the interface for upload metadata records
type FileRepository interface {
	// Create records upload metadata
	Create(record *models.FileRecord) error

	// FindByID finds an owner's file record
	FindByID(ownerID, fileID string) (*models.FileRecord, error)

	// Delete removes an owner's file record, reporting the number of rows
	// matched
	Delete(ownerID, fileID string) (int64, error)
}
