package repository

import (
	"time"

	"github.com/webplanner/webplanner-api/internal/models"
	"gorm.io/gorm"
)

// GormSubtaskRepository is a GORM implementation of SubtaskRepository
type GormSubtaskRepository struct {
	db *gorm.DB
}

// NewSubtaskRepository creates a new SubtaskRepository
func NewSubtaskRepository(db *gorm.DB) SubtaskRepository {
	return &GormSubtaskRepository{db: db}
}

// touchOwnedTask bumps the parent task's updated_at through the owner-scoped
// filter. It doubles as the ownership check: zero rows matched means the task
// is missing or foreign, and the surrounding transaction rolls the bump back
// if the subtask mutation itself fails.
func touchOwnedTask(tx *gorm.DB, ownerID, taskID string) error {
	res := ownedTasks(tx, ownerID, taskID).Update("updated_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoMatch
	}
	return nil
}

// Append adds a subtask to the end of an owner's task list
func (r *GormSubtaskRepository) Append(ownerID, taskID string, subtask *models.Subtask) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := touchOwnedTask(tx, ownerID, taskID); err != nil {
			return err
		}

		// MAX+1 rather than a row count: deleting a non-final subtask must
		// not make the next append reuse a live position.
		var next int
		if err := tx.Model(&models.Subtask{}).
			Where("task_id = ?", taskID).
			Select("COALESCE(MAX(position) + 1, 0)").
			Scan(&next).Error; err != nil {
			return err
		}

		subtask.TaskID = taskID
		subtask.Position = next
		return tx.Create(subtask).Error
	})
}

// UpdateFields applies a column map to a subtask of an owner's task
func (r *GormSubtaskRepository) UpdateFields(ownerID, taskID, subtaskID string, fields map[string]interface{}) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := touchOwnedTask(tx, ownerID, taskID); err != nil {
			return err
		}

		res := tx.Model(&models.Subtask{}).
			Where("id = ? AND task_id = ?", subtaskID, taskID).
			Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoMatch
		}
		return nil
	})
}

// Delete removes a subtask from an owner's task
func (r *GormSubtaskRepository) Delete(ownerID, taskID, subtaskID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := touchOwnedTask(tx, ownerID, taskID); err != nil {
			return err
		}

		res := tx.Where("id = ? AND task_id = ?", subtaskID, taskID).
			Delete(&models.Subtask{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoMatch
		}
		return nil
	})
}
