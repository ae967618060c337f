package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webplanner/webplanner-api/internal/dto"
	apierrors "github.com/webplanner/webplanner-api/internal/errors"
	"github.com/webplanner/webplanner-api/internal/middleware"
	"github.com/webplanner/webplanner-api/internal/services"
)

// SubtaskHandler coordinates subtask HTTP handlers. All routes carry the
// parent task id; ownership is re-checked on every call.
type SubtaskHandler struct {
	subtaskService *services.SubtaskService
}

// NewSubtaskHandler creates a new SubtaskHandler
func NewSubtaskHandler(subtaskService *services.SubtaskService) *SubtaskHandler {
	return &SubtaskHandler{
		subtaskService: subtaskService,
	}
}

// AddSubtask appends a subtask to one of the current user's tasks
func (h *SubtaskHandler) AddSubtask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddSubtaskRequest struct {
		Title string `json:"title" binding:"required"`
	}

	var req AddSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	subtask, err := h.subtaskService.AddSubtask(userID, c.Param("id"), req.Title)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubtaskDTO(*subtask))
}

// UpdateSubtask applies a partial update to a subtask
func (h *SubtaskHandler) UpdateSubtask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateSubtaskRequest struct {
		Title *string `json:"title"`
		Done  *bool   `json:"done"`
	}

	var req UpdateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title == nil && req.Done == nil {
		apierrors.BadRequest(c, "No fields to update")
		return
	}

	err := h.subtaskService.UpdateSubtask(userID, c.Param("id"), c.Param("subtask_id"), services.UpdateSubtaskInput{
		Title: req.Title,
		Done:  req.Done,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subtask updated",
	})
}

// DeleteSubtask removes a subtask from one of the current user's tasks
func (h *SubtaskHandler) DeleteSubtask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.subtaskService.DeleteSubtask(userID, c.Param("id"), c.Param("subtask_id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Subtask deleted",
	})
}
