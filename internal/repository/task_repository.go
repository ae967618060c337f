package repository

import (
	"time"

	"github.com/webplanner/webplanner-api/internal/database"
	"github.com/webplanner/webplanner-api/internal/models"
	"github.com/webplanner/webplanner-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// ownedTasks is the single scoped-mutation filter: every task write in this
// package goes through it, so an ownership check can never be skipped or
// split from the mutation it guards.
func ownedTasks(db *gorm.DB, ownerID, taskID string) *gorm.DB {
	return db.Model(&models.Task{}).Where("tasks.id = ? AND tasks.owner_id = ?", taskID, ownerID)
}

// orderedSubtasks preloads the embedded subtask list in stored order
func orderedSubtasks(db *gorm.DB) *gorm.DB {
	return db.Order("subtasks.position ASC, subtasks.created_at ASC")
}

// Create creates a new task together with its initial subtasks
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds an owner's task with subtasks preloaded in order
func (r *GormTaskRepository) FindByID(ownerID, taskID string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Preload("Subtasks", orderedSubtasks).
		Where("id = ? AND owner_id = ?", taskID, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves an owner's tasks, newest first, paginated
func (r *GormTaskRepository) List(ownerID string, params utils.PaginationParams) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("tasks.owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.
		Order("tasks.created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListDueBetween retrieves an owner's tasks due in [from, to), ascending by
// due date. The range predicate never matches a NULL due date.
func (r *GormTaskRepository) ListDueBetween(ownerID string, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("Subtasks", orderedSubtasks).
		Where("owner_id = ? AND due_date >= ? AND due_date < ?", ownerID, from, to).
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateFields applies a column map to an owner's task in one conditional
// write and reports the number of rows matched
func (r *GormTaskRepository) UpdateFields(ownerID, taskID string, fields map[string]interface{}) (int64, error) {
	res := ownedTasks(r.db, ownerID, taskID).Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Delete removes an owner's task and its subtasks in a transaction
func (r *GormTaskRepository) Delete(ownerID, taskID string) (int64, error) {
	var matched int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := ownedTasks(tx, ownerID, taskID).Delete(&models.Task{})
		if res.Error != nil {
			return res.Error
		}
		matched = res.RowsAffected
		if matched == 0 {
			return nil
		}

		return tx.Where("task_id = ?", taskID).Delete(&models.Subtask{}).Error
	})
	return matched, err
}

// ClearAttachment blanks the attachment pointer on every task of this owner
// referencing the given file id
func (r *GormTaskRepository) ClearAttachment(ownerID, fileID string) error {
	return r.db.Model(&models.Task{}).
		Where("owner_id = ? AND attachment_file_id = ?", ownerID, fileID).
		Updates(map[string]interface{}{
			"attachment_file_id":      "",
			"attachment_filename":     "",
			"attachment_url":          "",
			"attachment_content_type": "",
			"attachment_size_bytes":   0,
			"updated_at":              time.Now().UTC(),
		}).Error
}
