package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/webplanner/webplanner-api/internal/models"
	"github.com/webplanner/webplanner-api/internal/repository"
	"github.com/webplanner/webplanner-api/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrInvalidFileID = errors.New("invalid file id")
)

const defaultContentType = "application/octet-stream"

// AttachmentService records metadata for uploaded files and keeps task
// attachment pointers consistent with the metadata records. Blob bytes live
// in the external blob store; their removal is best-effort.
type AttachmentService struct {
	fileRepo repository.FileRepository
	taskRepo repository.TaskRepository
	blobs    storage.BlobStore
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(fileRepo repository.FileRepository, taskRepo repository.TaskRepository, blobs storage.BlobStore) *AttachmentService {
	return &AttachmentService{
		fileRepo: fileRepo,
		taskRepo: taskRepo,
		blobs:    blobs,
	}
}

// Upload stores the blob under a fresh file identity and records metadata
// scoped to the uploading owner.
func (s *AttachmentService) Upload(ownerID string, r io.Reader, filename, contentType string) (*models.FileRecord, error) {
	if contentType == "" {
		contentType = defaultContentType
	}

	fileID := uuid.NewString()
	path, size, err := s.blobs.Save(ownerID, fileID, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	record := &models.FileRecord{
		ID:          fileID,
		OwnerID:     ownerID,
		Filename:    sanitizeFilename(filename),
		StoragePath: path,
		ContentType: contentType,
		SizeBytes:   size,
	}

	if err := s.fileRepo.Create(record); err != nil {
		if removeErr := s.blobs.Remove(path); removeErr != nil {
			log.Printf("failed to remove orphaned blob %s: %v", path, removeErr)
		}
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return record, nil
}

// Fetch returns an owner's file record. A known file id presented by another
// owner resolves to nothing.
func (s *AttachmentService) Fetch(ownerID, fileID string) (*models.FileRecord, error) {
	if _, err := uuid.Parse(fileID); err != nil {
		return nil, ErrInvalidFileID
	}

	record, err := s.fileRepo.FindByID(ownerID, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to find file: %w", err)
	}

	return record, nil
}

// Open returns the blob contents of an owner's file for streaming
func (s *AttachmentService) Open(ownerID, fileID string) (io.ReadCloser, *models.FileRecord, error) {
	record, err := s.Fetch(ownerID, fileID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.blobs.Open(record.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open blob: %w", err)
	}

	return reader, record, nil
}

// Delete removes the blob bytes and the metadata record, then clears the
// attachment pointer on every task of this owner referencing the file.
// A missing blob is not fatal.
func (s *AttachmentService) Delete(ownerID, fileID string) error {
	record, err := s.Fetch(ownerID, fileID)
	if err != nil {
		return err
	}

	if err := s.blobs.Remove(record.StoragePath); err != nil {
		log.Printf("failed to remove blob %s: %v", record.StoragePath, err)
	}

	matched, err := s.fileRepo.Delete(ownerID, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	if matched == 0 {
		return ErrFileNotFound
	}

	if err := s.taskRepo.ClearAttachment(ownerID, fileID); err != nil {
		return fmt.Errorf("failed to clear attachment pointers: %w", err)
	}

	return nil
}

// sanitizeFilename reduces an uploaded filename to a safe base name
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "upload"
	}
	return name
}
