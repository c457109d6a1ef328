package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusAssigned   TaskStatus = "ASSIGNED"
	TaskStatusAccepted   TaskStatus = "ACCEPTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusClosed     TaskStatus = "CLOSED"
)

type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "LOW"
	TaskPriorityMedium   TaskPriority = "MEDIUM"
	TaskPriorityHigh     TaskPriority = "HIGH"
	TaskPriorityCritical TaskPriority = "CRITICAL"
)

// ValidPriority reports whether p is one of the declared priority levels.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Priority     TaskPriority   `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Status       TaskStatus     `gorm:"type:varchar(20);not null;default:'ASSIGNED'" json:"status"`
	DueDate      *time.Time     `json:"due_date"`
	AssignedByID uint64         `gorm:"not null" json:"assigned_by_id"`
	AssignedToID *uint64        `gorm:"index" json:"assigned_to_id"`
	TeamID       *uint64        `gorm:"index" json:"team_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedBy   User          `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
	AssignedTo   *User         `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	Team         *Team         `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Comments     []Comment     `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
	Attachments  []Attachment  `gorm:"foreignKey:TaskID" json:"attachments,omitempty"`
	ActivityLogs []ActivityLog `gorm:"foreignKey:TaskID" json:"activity_logs,omitempty"`
}
