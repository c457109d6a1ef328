package models

import (
	"time"

	"gorm.io/gorm"
)

type Team struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"type:varchar(50);not null" json:"name"`
	ClubName   *string        `gorm:"type:varchar(100)" json:"club_name"`
	JoinCode   string         `gorm:"type:varchar(6);uniqueIndex;not null" json:"join_code"`
	MaxMembers int            `gorm:"not null" json:"max_members"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	IsVerified bool           `gorm:"not null;default:false" json:"is_verified"`
	Points     int            `gorm:"not null;default:0" json:"points"`
	CreatorID  uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator User   `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Members []User `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Tasks   []Task `gorm:"foreignKey:TeamID" json:"tasks,omitempty"`
}
