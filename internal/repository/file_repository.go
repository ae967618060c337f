package repository

import (
	"github.com/webplanner/webplanner-api/internal/models"
	"gorm.io/gorm"
)

// GormFileRepository is a GORM implementation of FileRepository
type GormFileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *gorm.DB) FileRepository {
	return &GormFileRepository{db: db}
}

// Create records upload metadata
func (r *GormFileRepository) Create(record *models.FileRecord) error {
	return r.db.Create(record).Error
}

// FindByID finds an owner's file record. A foreign caller never resolves the
// record, even with a known file id.
func (r *GormFileRepository) FindByID(ownerID, fileID string) (*models.FileRecord, error) {
	var record models.FileRecord
	if err := r.db.Where("id = ? AND owner_id = ?", fileID, ownerID).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes an owner's file record and reports the number of rows matched
func (r *GormFileRepository) Delete(ownerID, fileID string) (int64, error) {
	res := r.db.Where("id = ? AND owner_id = ?", fileID, ownerID).
		Delete(&models.FileRecord{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
