package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	TeamID       *uint64        `gorm:"index" json:"team_id"`
	IsTeamLeader bool           `gorm:"not null;default:false" json:"is_team_leader"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Team          *Team  `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	AssignedTasks []Task `gorm:"foreignKey:AssignedToID" json:"-"`
	CreatedTasks  []Task `gorm:"foreignKey:AssignedByID" json:"-"`
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
