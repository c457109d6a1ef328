package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/enigmahq/taskboard/internal/constants"
	"github.com/enigmahq/taskboard/internal/logging"
	"github.com/enigmahq/taskboard/internal/models"
	"github.com/enigmahq/taskboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrAdminOnly            = errors.New("only administrators can perform this action")
	ErrNotTaskParticipant   = errors.New("user is not assigned to this task")
	ErrTitleTooShort        = fmt.Errorf("title must be at least %d characters", constants.MinTitleLength)
	ErrDescriptionTooShort  = fmt.Errorf("description must be at least %d characters", constants.MinDescriptionLength)
	ErrInvalidPriority      = errors.New("invalid task priority")
	ErrDualAssignment       = errors.New("a task may target a single user or a team, not both")
	ErrAssigneeNotFound     = errors.New("assigned user does not exist")
	ErrAssignedTeamNotFound = errors.New("assigned team does not exist")

	// ErrTaskStatusConflict signals that a concurrent transition won the
	// race: the status the request was evaluated against no longer held at
	// write time.
	ErrTaskStatusConflict = errors.New("task was already modified")

	ErrTaskNotAcceptable  = errors.New("task cannot be accepted at this stage")
	ErrTaskNotStartable   = errors.New("task must be accepted before work can start")
	ErrTaskNotCompletable = errors.New("task must be accepted before completion")
	ErrTaskAlreadyClosed  = errors.New("task is already closed")
	ErrTaskNotReopenable  = errors.New("only closed or completed tasks can be reopened")
	ErrEmptySubmission    = errors.New("work description is required")
	ErrEmptyComment       = errors.New("comment cannot be empty")
)

// submissionPrefix marks a comment as a work submission.
const submissionPrefix = "[SUBMISSION] "

// TaskService governs the task lifecycle state machine.
type TaskService struct {
	taskRepo repository.TaskRepository
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	Priority     models.TaskPriority
	DueDate      *time.Time
	AssignedToID *uint64
	TeamID       *uint64
}

// CreateTask creates a task in the ASSIGNED state. Admin only.
func (s *TaskService) CreateTask(actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrAdminOnly
	}

	if len(strings.TrimSpace(input.Title)) < constants.MinTitleLength {
		return nil, ErrTitleTooShort
	}
	if len(strings.TrimSpace(input.Description)) < constants.MinDescriptionLength {
		return nil, ErrDescriptionTooShort
	}
	if !models.ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}
	if input.AssignedToID != nil && input.TeamID != nil {
		return nil, ErrDualAssignment
	}

	if input.AssignedToID != nil {
		if _, err := s.userRepo.FindByID(*input.AssignedToID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
	}
	if input.TeamID != nil {
		if _, err := s.teamRepo.FindByID(*input.TeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssignedTeamNotFound
			}
			return nil, fmt.Errorf("failed to verify team: %w", err)
		}
	}

	task := &models.Task{
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Priority:     input.Priority,
		Status:       models.TaskStatusAssigned,
		DueDate:      input.DueDate,
		AssignedByID: actor.ID,
		AssignedToID: input.AssignedToID,
		TeamID:       input.TeamID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logActivity(task.ID, actor.ID, models.ActionTaskCreated)

	return s.taskRepo.FindByID(task.ID, "AssignedBy", "AssignedTo", "Team")
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status   *models.TaskStatus
	Page     int
	PageSize int
}

// ListTasks returns tasks visible to the actor. Admins see every task;
// members see only tasks assigned to them directly or to their team. The
// scope restriction lives in the query itself and is never relaxed.
func (s *TaskService) ListTasks(actor *models.User, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if !actor.IsAdmin() {
		filter.VisibleToUserID = &actor.ID
		filter.VisibleToTeamID = actor.TeamID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with related data if the actor may see it.
func (s *TaskService) GetTask(actor *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID, "AssignedBy", "AssignedTo", "Team", "Comments", "Comments.Author", "Attachments", "ActivityLogs", "ActivityLogs.User")
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !isTaskParticipant(actor, task) {
		return nil, ErrNotTaskParticipant
	}

	return task, nil
}

// Accept transitions ASSIGNED -> ACCEPTED. The write is qualified by the
// expected prior state; of two simultaneous accepts exactly one wins.
func (s *TaskService) Accept(actor *models.User, taskID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if !isTaskParticipant(actor, task) {
		return ErrNotTaskParticipant
	}
	if task.Status != models.TaskStatusAssigned {
		return ErrTaskNotAcceptable
	}

	rows, err := s.taskRepo.UpdateStatus(taskID,
		[]models.TaskStatus{models.TaskStatusAssigned},
		models.TaskStatusAccepted)
	if err != nil {
		return fmt.Errorf("failed to accept task: %w", err)
	}
	if rows == 0 {
		return ErrTaskStatusConflict
	}

	s.logActivity(taskID, actor.ID, models.ActionTaskAccepted)
	return nil
}

// StartWork transitions ACCEPTED -> IN_PROGRESS.
func (s *TaskService) StartWork(actor *models.User, taskID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if !isTaskParticipant(actor, task) {
		return ErrNotTaskParticipant
	}
	if task.Status != models.TaskStatusAccepted {
		return ErrTaskNotStartable
	}

	rows, err := s.taskRepo.UpdateStatus(taskID,
		[]models.TaskStatus{models.TaskStatusAccepted},
		models.TaskStatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to start work: %w", err)
	}
	if rows == 0 {
		return ErrTaskStatusConflict
	}

	s.logActivity(taskID, actor.ID, models.ActionWorkStarted)
	return nil
}

// MarkComplete transitions ACCEPTED or IN_PROGRESS -> COMPLETED.
func (s *TaskService) MarkComplete(actor *models.User, taskID uint64) error {
	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if !isTaskParticipant(actor, task) {
		return ErrNotTaskParticipant
	}
	if task.Status != models.TaskStatusAccepted && task.Status != models.TaskStatusInProgress {
		return ErrTaskNotCompletable
	}

	rows, err := s.taskRepo.UpdateStatus(taskID,
		[]models.TaskStatus{models.TaskStatusAccepted, models.TaskStatusInProgress},
		models.TaskStatusCompleted)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	if rows == 0 {
		return ErrTaskStatusConflict
	}

	s.logActivity(taskID, actor.ID, models.ActionTaskCompleted)
	return nil
}

// AttachmentInput references an already uploaded file.
type AttachmentInput struct {
	URL      string
	Filename string
}

// SubmitWork records a work submission: attachments, a submission-marker
// comment and the activity entry are written as one logical event. Status is
// not changed; completion is a separate explicit action.
func (s *TaskService) SubmitWork(actor *models.User, taskID uint64, content string, attachments []AttachmentInput) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptySubmission
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if !isTaskParticipant(actor, task) {
		return ErrNotTaskParticipant
	}

	records := make([]models.Attachment, len(attachments))
	for i, att := range attachments {
		records[i] = models.Attachment{
			TaskID:       taskID,
			URL:          att.URL,
			Filename:     att.Filename,
			UploadedByID: actor.ID,
		}
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: actor.ID,
		Content:  submissionPrefix + content,
	}

	entry := &models.ActivityLog{
		TaskID: taskID,
		UserID: actor.ID,
		Action: models.ActionWorkSubmitted,
	}

	if err := s.taskRepo.CreateSubmission(comment, records, entry); err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	return nil
}

// Close transitions any non-closed status -> CLOSED. Admin only. A close
// racing an accept is serialized by the conditional write: whichever commits
// first wins and the loser sees a status conflict.
func (s *TaskService) Close(actor *models.User, taskID uint64) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if task.Status == models.TaskStatusClosed {
		return ErrTaskAlreadyClosed
	}

	rows, err := s.taskRepo.UpdateStatus(taskID,
		[]models.TaskStatus{
			models.TaskStatusAssigned,
			models.TaskStatusAccepted,
			models.TaskStatusInProgress,
			models.TaskStatusCompleted,
		},
		models.TaskStatusClosed)
	if err != nil {
		return fmt.Errorf("failed to close task: %w", err)
	}
	if rows == 0 {
		return ErrTaskStatusConflict
	}

	s.logActivity(taskID, actor.ID, models.ActionTaskClosed)
	return nil
}

// Reopen transitions CLOSED or COMPLETED back to ASSIGNED. Admin only.
func (s *TaskService) Reopen(actor *models.User, taskID uint64) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if task.Status != models.TaskStatusClosed && task.Status != models.TaskStatusCompleted {
		return ErrTaskNotReopenable
	}

	rows, err := s.taskRepo.UpdateStatus(taskID,
		[]models.TaskStatus{models.TaskStatusClosed, models.TaskStatusCompleted},
		models.TaskStatusAssigned)
	if err != nil {
		return fmt.Errorf("failed to reopen task: %w", err)
	}
	if rows == 0 {
		return ErrTaskStatusConflict
	}

	s.logActivity(taskID, actor.ID, models.ActionTaskReopened)
	return nil
}

// Delete removes a task and its dependent records. Admin only.
func (s *TaskService) Delete(actor *models.User, taskID uint64) error {
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	if _, err := s.findTask(taskID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// AddComment appends a comment to a task the actor may see.
func (s *TaskService) AddComment(actor *models.User, taskID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyComment
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !isTaskParticipant(actor, task) {
		return nil, ErrNotTaskParticipant
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: actor.ID,
		Content:  content,
	}

	if err := s.taskRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// ListComments returns a task's comments in creation order.
func (s *TaskService) ListComments(actor *models.User, taskID uint64) ([]models.Comment, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !isTaskParticipant(actor, task) {
		return nil, ErrNotTaskParticipant
	}

	comments, err := s.taskRepo.ListComments(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// ListActivity returns a task's audit trail in creation order.
func (s *TaskService) ListActivity(actor *models.User, taskID uint64) ([]models.ActivityLog, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !isTaskParticipant(actor, task) {
		return nil, ErrNotTaskParticipant
	}

	entries, err := s.taskRepo.ListActivity(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	return entries, nil
}

func (s *TaskService) findTask(taskID uint64, preload ...string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// logActivity appends an audit entry for an already committed transition.
// The transition stands even if the audit write fails.
func (s *TaskService) logActivity(taskID, userID uint64, action models.ActivityAction) {
	entry := &models.ActivityLog{
		TaskID: taskID,
		UserID: userID,
		Action: action,
	}
	if err := s.taskRepo.AddActivity(entry); err != nil {
		logging.Logger.WithError(err).
			WithField("task_id", taskID).
			WithField("action", action).
			Warn("failed to append activity log")
	}
}

// isTaskParticipant reports whether the actor is the task's direct assignee
// or a member of its assigned team.
func isTaskParticipant(actor *models.User, task *models.Task) bool {
	if task.AssignedToID != nil && *task.AssignedToID == actor.ID {
		return true
	}
	if task.TeamID != nil && actor.TeamID != nil && *task.TeamID == *actor.TeamID {
		return true
	}
	return false
}
