package models

import "time"

type Attachment struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	TaskID       uint64    `gorm:"not null;index" json:"task_id"`
	URL          string    `gorm:"type:varchar(512);not null" json:"url"`
	Filename     string    `gorm:"type:varchar(255);not null" json:"filename"`
	UploadedByID uint64    `gorm:"not null" json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Task       Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	UploadedBy User `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}
