package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/enigmahq/taskboard/internal/constants"
	"github.com/enigmahq/taskboard/internal/models"
	"github.com/enigmahq/taskboard/internal/repository"
	"github.com/enigmahq/taskboard/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidTeamName    = fmt.Errorf("team name must be between %d and %d characters", constants.MinTeamNameLength, constants.MaxTeamNameLength)
	ErrInvalidMaxMembers  = fmt.Errorf("max members must be between %d and %d", constants.MinTeamMembers, constants.MaxTeamMembers)
	ErrAlreadyInTeam      = errors.New("you are already part of a team")
	ErrAlreadyCreatedTeam = errors.New("you have already created a team")
	ErrInvalidJoinCode    = errors.New("invalid team code")
	ErrTeamInactive       = errors.New("this team is no longer accepting new members")
	ErrTeamFull           = errors.New("this team is full")
	ErrOwnTeam            = errors.New("you cannot join your own team")
	ErrNotInTeam          = errors.New("you are not part of a team")
	ErrTeamNotFound       = errors.New("team not found")

	// ErrJoinCodeExhausted is returned when the bounded generate-and-check
	// loop cannot find an unused code. With 36^6 possible codes this is a
	// practically unreachable capacity condition.
	ErrJoinCodeExhausted = errors.New("failed to generate a unique join code")
)

// TeamService governs team formation and membership admission.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name       string
	ClubName   *string
	MaxMembers int
}

// CreateTeam creates a team with a unique join code. The creator becomes the
// sole member and leader; creating counts as joining, so a user may do
// neither twice.
func (s *TeamService) CreateTeam(actor *models.User, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < constants.MinTeamNameLength || len(name) > constants.MaxTeamNameLength {
		return nil, ErrInvalidTeamName
	}

	maxMembers := input.MaxMembers
	if maxMembers == 0 {
		maxMembers = constants.DefaultTeamMembers
	}
	if maxMembers < constants.MinTeamMembers || maxMembers > constants.MaxTeamMembers {
		return nil, ErrInvalidMaxMembers
	}

	if actor.TeamID != nil {
		return nil, ErrAlreadyInTeam
	}

	if _, err := s.teamRepo.FindByCreatorID(actor.ID); err == nil {
		return nil, ErrAlreadyCreatedTeam
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing team: %w", err)
	}

	joinCode, err := s.uniqueJoinCode()
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:       name,
		ClubName:   input.ClubName,
		JoinCode:   joinCode,
		MaxMembers: maxMembers,
		IsActive:   true,
		CreatorID:  actor.ID,
	}

	if err := s.teamRepo.CreateWithLeader(team, actor.ID); err != nil {
		if errors.Is(err, repository.ErrMemberClaimFailed) {
			return nil, ErrAlreadyInTeam
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// JoinTeam admits the actor into the team identified by the join code. All
// admission conditions are evaluated fresh, and capacity is re-validated at
// write time so concurrent joiners can never overfill a team.
func (s *TeamService) JoinTeam(actor *models.User, code string) (*models.Team, error) {
	if actor.TeamID != nil {
		return nil, ErrAlreadyInTeam
	}

	team, err := s.teamRepo.FindByJoinCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidJoinCode
		}
		return nil, fmt.Errorf("failed to look up team: %w", err)
	}

	if !team.IsActive {
		return nil, ErrTeamInactive
	}
	// Creator is a member by construction.
	if team.CreatorID == actor.ID {
		return nil, ErrOwnTeam
	}

	count, err := s.teamRepo.CountMembers(team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if count >= int64(team.MaxMembers) {
		return nil, ErrTeamFull
	}

	if err := s.teamRepo.AdmitMember(team.ID, team.MaxMembers, actor.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrTeamFull):
			return nil, ErrTeamFull
		case errors.Is(err, repository.ErrAlreadyInTeam):
			return nil, ErrAlreadyInTeam
		default:
			return nil, fmt.Errorf("failed to join team: %w", err)
		}
	}

	return s.teamRepo.FindByID(team.ID, "Members", "Creator")
}

// LeaveTeam removes the actor from their team. A leaving leader disbands the
// whole team; every member's link is cleared and the team's tasks revert to
// unassigned.
func (s *TeamService) LeaveTeam(actor *models.User) (disbanded bool, err error) {
	if actor.TeamID == nil {
		return false, ErrNotInTeam
	}

	if actor.IsTeamLeader {
		if err := s.teamRepo.Disband(*actor.TeamID); err != nil {
			return false, fmt.Errorf("failed to disband team: %w", err)
		}
		return true, nil
	}

	if err := s.teamRepo.RemoveMember(actor.ID); err != nil {
		return false, fmt.Errorf("failed to leave team: %w", err)
	}
	return false, nil
}

// GetTeamForUser returns the actor's team with roster and creator loaded.
func (s *TeamService) GetTeamForUser(actor *models.User) (*models.Team, error) {
	if actor.TeamID == nil {
		return nil, ErrNotInTeam
	}

	team, err := s.teamRepo.FindByID(*actor.TeamID, "Members", "Creator")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

// ListTeams returns all teams. Callers are responsible for restricting this
// to administrators.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// uniqueJoinCode runs the bounded generate-and-check loop. Collisions are
// practically unreachable but correctness requires the explicit check.
func (s *TeamService) uniqueJoinCode() (string, error) {
	for attempt := 0; attempt < constants.MaxJoinCodeAttempts; attempt++ {
		code, err := utils.GenerateJoinCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate join code: %w", err)
		}

		exists, err := s.teamRepo.JoinCodeExists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrJoinCodeExhausted
}
