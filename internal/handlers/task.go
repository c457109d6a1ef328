package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/enigmahq/taskboard/internal/dto"
	apierrors "github.com/enigmahq/taskboard/internal/errors"
	"github.com/enigmahq/taskboard/internal/middleware"
	"github.com/enigmahq/taskboard/internal/models"
	"github.com/enigmahq/taskboard/internal/services"
	"github.com/enigmahq/taskboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task lifecycle HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks visible to the current user. Admins see all tasks;
// members see only their own and their team's.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params := utils.GetPaginationParams(c)

	input := services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		input.Status = &status
	}

	tasks, total, err := h.taskService.ListTasks(actor, input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a task with comments, attachments and activity logs.
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, taskID, ok := h.actorAndTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task. Admin only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title        string     `json:"title" binding:"required"`
		Description  string     `json:"description" binding:"required"`
		Priority     string     `json:"priority" binding:"required"`
		DueDate      *time.Time `json:"due_date"`
		AssignedToID *uint64    `json:"assigned_to_id"`
		TeamID       *uint64    `json:"team_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(actor, services.CreateTaskInput{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     models.TaskPriority(req.Priority),
		DueDate:      req.DueDate,
		AssignedToID: req.AssignedToID,
		TeamID:       req.TeamID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// AcceptTask transitions a task from ASSIGNED to ACCEPTED.
func (h *TaskHandler) AcceptTask(c *gin.Context) {
	h.transition(c, h.taskService.Accept, "Task accepted")
}

// StartTask transitions a task from ACCEPTED to IN_PROGRESS.
func (h *TaskHandler) StartTask(c *gin.Context) {
	h.transition(c, h.taskService.StartWork, "Work started")
}

// CompleteTask transitions a task to COMPLETED.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.transition(c, h.taskService.MarkComplete, "Task completed")
}

// CloseTask transitions a task to CLOSED. Admin only.
func (h *TaskHandler) CloseTask(c *gin.Context) {
	h.transition(c, h.taskService.Close, "Task closed")
}

// ReopenTask transitions a CLOSED or COMPLETED task back to ASSIGNED. Admin only.
func (h *TaskHandler) ReopenTask(c *gin.Context) {
	h.transition(c, h.taskService.Reopen, "Task reopened")
}

// DeleteTask removes a task and its dependent records. Admin only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, taskID, ok := h.actorAndTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(actor, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// SubmitWork records a work submission with optional attachments.
func (h *TaskHandler) SubmitWork(c *gin.Context) {
	actor, taskID, ok := h.actorAndTaskID(c)
	if !ok {
		return
	}

	type AttachmentRequest struct {
		URL      string `json:"url" binding:"required"`
		Filename string `json:"filename" binding:"required"`
	}
	type SubmitWorkRequest struct {
		Content     string              `json:"content" binding:"required"`
		Attachments []AttachmentRequest `json:"attachments"`
	}

	var req SubmitWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Work description is required")
		return
	}

	attachments := make([]services.AttachmentInput, len(req.Attachments))
	for i, att := range req.Attachments {
		attachments[i] = services.AttachmentInput{
			URL:      att.URL,
			Filename: att.Filename,
		}
	}

	if err := h.taskService.SubmitWork(actor, taskID, req.Content, attachments); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Work submitted successfully"})
}

// AddComment appends a comment to a task.
func (h *TaskHandler) AddComment(c *gin.Context) {
	actor, taskID, ok := h.actorAndTaskID(c)
	if !ok {
		return
	}

	type AddCommentRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Comment cannot be empty")
		return
	}

	comment, err := h.taskService.AddComment(actor, taskID, req.Content)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

// ListComments returns a task's comments ordered by creation time.
func (h *TaskHandler) ListComments(c *gin.Context) {
	actor, taskID, ok := h.actorAndTaskID(c)
	if !ok {
		return
	}

	comments, err := h.taskService.ListComments(actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	commentDTOs := make([]dto.CommentDTO, len(comments))
	for i, comment := range comments {
		commentDTOs[i] = dto.ToCommentDTO(comment)
	}

	c.JSON(http.StatusOK, gin.H{"comments": commentDTOs})
}

// ListActivity returns a task's audit trail.
func (h *TaskHandler) ListActivity(c *gin.Context) {
	actor, taskID, ok := h.actorAndTaskID(c)
	if !ok {
		return
	}

	entries, err := h.taskService.ListActivity(actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	entryDTOs := make([]dto.ActivityLogDTO, len(entries))
	for i, entry := range entries {
		entryDTOs[i] = dto.ToActivityLogDTO(entry)
	}

	c.JSON(http.StatusOK, gin.H{"activity": entryDTOs})
}

// transition runs a status-transition service call and renders the outcome.
func (h *TaskHandler) transition(c *gin.Context, op func(*models.User, uint64) error, message string) {
	actor, taskID, ok := h.actorAndTaskID(c)
	if !ok {
		return
	}

	if err := op(actor, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *TaskHandler) actorAndTaskID(c *gin.Context) (*models.User, uint64, bool) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, 0, false
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return nil, 0, false
	}

	return actor, taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAdminOnly),
		errors.Is(err, services.ErrNotTaskParticipant):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleTooShort),
		errors.Is(err, services.ErrDescriptionTooShort),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrDualAssignment),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrAssignedTeamNotFound),
		errors.Is(err, services.ErrTaskNotAcceptable),
		errors.Is(err, services.ErrTaskNotStartable),
		errors.Is(err, services.ErrTaskNotCompletable),
		errors.Is(err, services.ErrTaskAlreadyClosed),
		errors.Is(err, services.ErrTaskNotReopenable),
		errors.Is(err, services.ErrEmptySubmission),
		errors.Is(err, services.ErrEmptyComment):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskStatusConflict):
		apierrors.PreconditionFailed(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
