package dto

import (
	"time"

	"github.com/enigmahq/taskboard/internal/models"
)

// TeamDTO represents a team in API responses. The join code is only included
// for the team's leader.
type TeamDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	ClubName    *string   `json:"club_name"`
	JoinCode    string    `json:"join_code,omitempty"`
	MaxMembers  int       `json:"max_members"`
	IsActive    bool      `json:"is_active"`
	IsVerified  bool      `json:"is_verified"`
	Points      int       `json:"points"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	Creator     *UserDTO  `json:"creator,omitempty"`
	Members     []UserDTO `json:"members,omitempty"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team, includeJoinCode bool) TeamDTO {
	dto := TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		ClubName:    team.ClubName,
		MaxMembers:  team.MaxMembers,
		IsActive:    team.IsActive,
		IsVerified:  team.IsVerified,
		Points:      team.Points,
		MemberCount: len(team.Members),
		CreatedAt:   team.CreatedAt,
	}
	if includeJoinCode {
		dto.JoinCode = team.JoinCode
	}

	if team.Creator.ID != 0 {
		creator := ToUserDTO(team.Creator)
		dto.Creator = &creator
	}
	if len(team.Members) > 0 {
		dto.Members = make([]UserDTO, len(team.Members))
		for i, member := range team.Members {
			dto.Members[i] = ToUserDTO(member)
		}
	}

	return dto
}

// ToTeamListDTO converts teams to DTOs for the admin listing, join codes
// included.
func ToTeamListDTO(teams []models.Team) []TeamDTO {
	items := make([]TeamDTO, len(teams))
	for i, team := range teams {
		items[i] = ToTeamDTO(team, true)
	}
	return items
}
