package models

import "time"

// ActivityAction tags an entry in a task's audit trail.
type ActivityAction string

const (
	ActionTaskCreated   ActivityAction = "TASK_CREATED"
	ActionTaskAccepted  ActivityAction = "TASK_ACCEPTED"
	ActionWorkStarted   ActivityAction = "WORK_STARTED"
	ActionWorkSubmitted ActivityAction = "WORK_SUBMITTED"
	ActionTaskCompleted ActivityAction = "TASK_COMPLETED"
	ActionTaskClosed    ActivityAction = "TASK_CLOSED"
	ActionTaskReopened  ActivityAction = "TASK_REOPENED"
)

type ActivityLog struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	TaskID    uint64         `gorm:"not null;index" json:"task_id"`
	UserID    uint64         `gorm:"not null" json:"user_id"`
	Action    ActivityAction `gorm:"type:varchar(50);not null" json:"action"`
	CreatedAt time.Time      `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
