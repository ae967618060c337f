package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webplanner/webplanner-api/internal/calendar"
	"github.com/webplanner/webplanner-api/internal/dto"
	apierrors "github.com/webplanner/webplanner-api/internal/errors"
	"github.com/webplanner/webplanner-api/internal/middleware"
	"github.com/webplanner/webplanner-api/internal/services"
	"github.com/webplanner/webplanner-api/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// attachmentRequest is the caller-supplied attachment pointer payload
type attachmentRequest struct {
	FileID      string `json:"file_id" binding:"required"`
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

func (r *attachmentRequest) toInput() *services.AttachmentInput {
	return &services.AttachmentInput{
		FileID:      r.FileID,
		Filename:    r.Filename,
		URL:         r.URL,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
	}
}

// ListTasks returns the current user's tasks. With view and date parameters
// it returns the calendar view; otherwise a paginated plain listing.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if view := c.Query("view"); view != "" {
		tasks, err := h.taskService.ListTasksByView(userID, view, c.Query("date"))
		if err != nil {
			respondTaskError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToViewListResponse(tasks))
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.ListTasks(userID, params)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// CreateTask creates a task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SubtaskRequest struct {
		Title string `json:"title" binding:"required"`
		Done  bool   `json:"done"`
	}
	type CreateTaskRequest struct {
		Title       string             `json:"title" binding:"required"`
		Priority    *int               `json:"priority"`
		DueDate     *string            `json:"due_date"`
		Description string             `json:"description"`
		Tags        []string           `json:"tags"`
		Comment     string             `json:"comment"`
		Subtasks    []SubtaskRequest   `json:"subtasks"`
		Attachment  *attachmentRequest `json:"attachment"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Priority:    req.Priority,
		Description: req.Description,
		Tags:        req.Tags,
		Comment:     req.Comment,
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := calendar.ParseAnchor(*req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date")
			return
		}
		input.DueDate = &due
	}

	for _, sub := range req.Subtasks {
		input.Subtasks = append(input.Subtasks, services.SubtaskInput{
			Title: sub.Title,
			Done:  sub.Done,
		})
	}

	if req.Attachment != nil {
		input.Attachment = req.Attachment.toInput()
	}

	task, err := h.taskService.CreateTask(userID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns one of the current user's tasks
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, err := h.taskService.GetTask(userID, c.Param("id"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update to one of the current user's tasks.
// An empty payload is rejected here; the service below this point always
// bumps updated_at.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateTaskRequest struct {
		Title           *string            `json:"title"`
		Priority        *int               `json:"priority"`
		DueDate         *string            `json:"due_date"`
		ClearDueDate    bool               `json:"clear_due_date"`
		Description     *string            `json:"description"`
		Tags            []string           `json:"tags"`
		Comment         *string            `json:"comment"`
		Done            *bool              `json:"done"`
		Attachment      *attachmentRequest `json:"attachment"`
		ClearAttachment bool               `json:"clear_attachment"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title == nil && req.Priority == nil && req.DueDate == nil && !req.ClearDueDate &&
		req.Description == nil && req.Tags == nil && req.Comment == nil && req.Done == nil &&
		req.Attachment == nil && !req.ClearAttachment {
		apierrors.BadRequest(c, "No fields to update")
		return
	}

	input := services.UpdateTaskInput{
		Title:           req.Title,
		Priority:        req.Priority,
		ClearDueDate:    req.ClearDueDate,
		Description:     req.Description,
		Tags:            req.Tags,
		Comment:         req.Comment,
		Done:            req.Done,
		ClearAttachment: req.ClearAttachment,
	}

	if req.DueDate != nil && *req.DueDate != "" {
		due, err := calendar.ParseAnchor(*req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, "Invalid due_date")
			return
		}
		input.DueDate = &due
	}

	if req.Attachment != nil {
		input.Attachment = req.Attachment.toInput()
	}

	task, err := h.taskService.UpdateTask(userID, c.Param("id"), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes one of the current user's tasks
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.taskService.DeleteTask(userID, c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTaskID),
		errors.Is(err, services.ErrInvalidTitle),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrDescriptionTooLong),
		errors.Is(err, services.ErrCommentTooLong),
		errors.Is(err, services.ErrSubtaskTitleEmpty):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrSubtaskNotFound):
		apierrors.NotFound(c, "Task not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
