package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webplanner/webplanner-api/internal/constants"
	"github.com/webplanner/webplanner-api/internal/dto"
	apierrors "github.com/webplanner/webplanner-api/internal/errors"
	"github.com/webplanner/webplanner-api/internal/middleware"
	"github.com/webplanner/webplanner-api/internal/services"
)

// FileHandler coordinates attachment upload/download HTTP handlers.
type FileHandler struct {
	attachmentService *services.AttachmentService
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(attachmentService *services.AttachmentService) *FileHandler {
	return &FileHandler{
		attachmentService: attachmentService,
	}
}

// Upload stores a multipart file and returns its metadata record
func (h *FileHandler) Upload(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "File required")
		return
	}
	defer file.Close()

	record, err := h.attachmentService.Upload(userID, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		respondFileError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFileDTO(*record))
}

// Fetch returns the metadata of one of the current user's files
func (h *FileHandler) Fetch(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	record, err := h.attachmentService.Fetch(userID, c.Param("id"))
	if err != nil {
		respondFileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFileDTO(*record))
}

// Download streams the blob contents of one of the current user's files
func (h *FileHandler) Download(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reader, record, err := h.attachmentService.Open(userID, c.Param("id"))
	if err != nil {
		respondFileError(c, err)
		return
	}
	defer reader.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", record.Filename),
	}
	c.DataFromReader(http.StatusOK, record.SizeBytes, record.ContentType, reader, extraHeaders)
}

// Delete removes one of the current user's files and clears any task
// attachment pointer referencing it
func (h *FileHandler) Delete(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.attachmentService.Delete(userID, c.Param("id")); err != nil {
		respondFileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted",
	})
}

func respondFileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidFileID):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFileNotFound):
		apierrors.NotFound(c, "File not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
