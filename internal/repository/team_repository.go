package repository

import (
	"errors"

	"github.com/enigmahq/taskboard/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrMemberClaimFailed is returned when the conditional membership claim
	// inside a team transaction affected no rows.
	ErrMemberClaimFailed = errors.New("team repository: membership claim failed")
	// ErrTeamFull is returned when admission would exceed the team's capacity.
	ErrTeamFull = errors.New("team repository: team is at capacity")
	// ErrAlreadyInTeam is returned when the joining user already holds a
	// membership link.
	ErrAlreadyInTeam = errors.New("team repository: user already belongs to a team")
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithLeader creates the team and claims the creator atomically. The
// creator claim is qualified by "not currently in a team" so a concurrent
// join or create by the same user cannot double-link them.
func (r *GormTeamRepository) CreateWithLeader(team *models.Team, creatorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND team_id IS NULL", creatorID).
			Updates(map[string]interface{}{
				"team_id":        team.ID,
				"is_team_leader": true,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMemberClaimFailed
		}

		return nil
	})
}

// FindByID finds a team by ID with optional preloading
func (r *GormTeamRepository) FindByID(id uint64, preload ...string) (*models.Team, error) {
	var team models.Team
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByJoinCode finds a team by exact join-code match
func (r *GormTeamRepository) FindByJoinCode(code string) (*models.Team, error) {
	var team models.Team
	if err := r.db.Where("join_code = ?", code).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByCreatorID finds the team created by a given user, if any
func (r *GormTeamRepository) FindByCreatorID(userID uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.Where("creator_id = ?", userID).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// JoinCodeExists reports whether a join code is already assigned
func (r *GormTeamRepository) JoinCodeExists(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Team{}).
		Where("join_code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountMembers returns a team's current member count
func (r *GormTeamRepository) CountMembers(teamID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

// AdmitMember admits a user into a team. The membership claim is a single
// conditional UPDATE qualified both by "user not yet in a team" and by the
// live member count staying below capacity, so two concurrent joiners racing
// for the last slot resolve to exactly one winner.
func (r *GormTeamRepository) AdmitMember(teamID uint64, maxMembers int, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ? AND team_id IS NULL", userID).
			Where("(SELECT COUNT(*) FROM (SELECT id FROM users WHERE team_id = ? AND deleted_at IS NULL) AS members) < ?",
				teamID, maxMembers).
			Update("team_id", teamID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		// The claim failed; distinguish the cause for the caller.
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.TeamID != nil {
			return ErrAlreadyInTeam
		}

		var count int64
		if err := tx.Model(&models.User{}).
			Where("team_id = ?", teamID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(maxMembers) {
			return ErrTeamFull
		}

		return ErrMemberClaimFailed
	})
}

// RemoveMember clears a user's team membership link
func (r *GormTeamRepository) RemoveMember(userID uint64) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"team_id":        nil,
			"is_team_leader": false,
		}).Error
}

// Disband deletes the team, clears all membership links and unassigns the
// team's tasks. Tasks themselves are retained; they revert to unassigned.
func (r *GormTeamRepository) Disband(teamID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("team_id = ?", teamID).
			Updates(map[string]interface{}{
				"team_id":        nil,
				"is_team_leader": false,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("team_id = ?", teamID).
			Update("team_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Team{}, teamID).Error
	})
}

// List returns all teams with their members preloaded
func (r *GormTeamRepository) List() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Members").
		Order("name ASC").
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
