package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// ApplyCollations pins a binary collation on the username column so that
// uniqueness and lookups stay case-sensitive. MySQL's default utf8mb4
// collation is case-insensitive; sqlite and postgres compare bytes already.
func ApplyCollations(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}

	sql := "ALTER TABLE users MODIFY COLUMN username VARCHAR(50) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL"
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to set username collation: %w", err)
	}

	return nil
}

// AddIndexes adds the composite indexes AutoMigrate cannot derive from
// struct tags
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Calendar views filter on owner and due date together
		{"tasks", "idx_tasks_owner_due_date", "owner_id, due_date"},
		// Plain listings sort an owner's tasks by creation time
		{"tasks", "idx_tasks_owner_created_at", "owner_id, created_at"},
		// Attachment deletion clears pointers by owner and file id
		{"tasks", "idx_tasks_owner_attachment", "owner_id, attachment_file_id"},
		// Subtask lists load in stored order
		{"subtasks", "idx_subtasks_task_position", "task_id, position"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Printf("Index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
