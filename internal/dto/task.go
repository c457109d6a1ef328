package dto

import (
	"time"

	"github.com/enigmahq/taskboard/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID           uint64          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         models.UserRole `json:"role"`
	IsTeamLeader bool            `json:"is_team_leader"`
}

// CommentDTO represents a comment in API responses
type CommentDTO struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Author    *UserDTO  `json:"author,omitempty"`
}

// AttachmentDTO represents an attachment in API responses
type AttachmentDTO struct {
	ID           uint64    `json:"id"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename"`
	UploadedByID uint64    `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// ActivityLogDTO represents an audit-trail entry in API responses
type ActivityLogDTO struct {
	ID        uint64                `json:"id"`
	Action    models.ActivityAction `json:"action"`
	CreatedAt time.Time             `json:"created_at"`
	User      *UserDTO              `json:"user,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Priority     models.TaskPriority `json:"priority"`
	Status       models.TaskStatus   `json:"status"`
	DueDate      *time.Time          `json:"due_date"`
	AssignedByID uint64              `json:"assigned_by_id"`
	AssignedToID *uint64             `json:"assigned_to_id"`
	TeamID       *uint64             `json:"team_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	AssignedBy   *UserDTO            `json:"assigned_by,omitempty"`
	AssignedTo   *UserDTO            `json:"assigned_to,omitempty"`
	Team         *TeamDTO            `json:"team,omitempty"`
	Comments     []CommentDTO        `json:"comments,omitempty"`
	Attachments  []AttachmentDTO     `json:"attachments,omitempty"`
	ActivityLogs []ActivityLogDTO    `json:"activity_logs,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		IsTeamLeader: user.IsTeamLeader,
	}
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author.ID != 0 {
		author := ToUserDTO(comment.Author)
		dto.Author = &author
	}
	return dto
}

// ToAttachmentDTO converts an Attachment model to AttachmentDTO
func ToAttachmentDTO(att models.Attachment) AttachmentDTO {
	return AttachmentDTO{
		ID:           att.ID,
		URL:          att.URL,
		Filename:     att.Filename,
		UploadedByID: att.UploadedByID,
		CreatedAt:    att.CreatedAt,
	}
}

// ToActivityLogDTO converts an ActivityLog model to ActivityLogDTO
func ToActivityLogDTO(entry models.ActivityLog) ActivityLogDTO {
	dto := ActivityLogDTO{
		ID:        entry.ID,
		Action:    entry.Action,
		CreatedAt: entry.CreatedAt,
	}
	if entry.User.ID != 0 {
		user := ToUserDTO(entry.User)
		dto.User = &user
	}
	return dto
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Priority:     task.Priority,
		Status:       task.Status,
		DueDate:      task.DueDate,
		AssignedByID: task.AssignedByID,
		AssignedToID: task.AssignedToID,
		TeamID:       task.TeamID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include relations only when preloaded
	if task.AssignedBy.ID != 0 {
		by := ToUserDTO(task.AssignedBy)
		dto.AssignedBy = &by
	}
	if task.AssignedTo != nil && task.AssignedTo.ID != 0 {
		to := ToUserDTO(*task.AssignedTo)
		dto.AssignedTo = &to
	}
	if task.Team != nil && task.Team.ID != 0 {
		team := ToTeamDTO(*task.Team, false)
		dto.Team = &team
	}

	if len(task.Comments) > 0 {
		dto.Comments = make([]CommentDTO, len(task.Comments))
		for i, comment := range task.Comments {
			dto.Comments[i] = ToCommentDTO(comment)
		}
	}
	if len(task.Attachments) > 0 {
		dto.Attachments = make([]AttachmentDTO, len(task.Attachments))
		for i, att := range task.Attachments {
			dto.Attachments[i] = ToAttachmentDTO(att)
		}
	}
	if len(task.ActivityLogs) > 0 {
		dto.ActivityLogs = make([]ActivityLogDTO, len(task.ActivityLogs))
		for i, entry := range task.ActivityLogs {
			dto.ActivityLogs[i] = ToActivityLogDTO(entry)
		}
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
