package repository

import (
	"github.com/enigmahq/taskboard/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateStatus performs a precondition-qualified status transition:
	// the write commits only if the task's status is still one of from.
	// It returns the number of rows affected; zero means the precondition
	// no longer held at write time.
	UpdateStatus(taskID uint64, from []models.TaskStatus, to models.TaskStatus) (int64, error)

	// Delete removes a task together with its comments, attachments and
	// activity logs in a single transaction.
	Delete(id uint64) error

	// AddComment appends a comment to a task
	AddComment(comment *models.Comment) error

	// ListComments returns a task's comments ordered by creation time
	ListComments(taskID uint64) ([]models.Comment, error)

	// AddActivity appends an activity-log entry to a task
	AddActivity(entry *models.ActivityLog) error

	// ListActivity returns a task's activity log ordered by creation time
	ListActivity(taskID uint64) ([]models.ActivityLog, error)

	// CreateSubmission persists a submission comment, its attachments and
	// the activity-log entry as a single logical event.
	CreateSubmission(comment *models.Comment, attachments []models.Attachment, entry *models.ActivityLog) error
}

// TaskFilter holds filtering options for listing tasks. When VisibleToUserID
// is set the result is restricted to tasks assigned to that user or to the
// given team; an unset filter returns all tasks (admin scope).
type TaskFilter struct {
	VisibleToUserID *uint64
	VisibleToTeamID *uint64
	Status          *models.TaskStatus
	Page            int
	PageSize        int
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithLeader creates a team and claims the creator as its initial
	// member and leader within a single transaction. The creator claim is
	// conditional on the user not already belonging to a team.
	CreateWithLeader(team *models.Team, creatorID uint64) error

	// FindByID finds a team by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Team, error)

	// FindByJoinCode finds a team by exact join-code match
	FindByJoinCode(code string) (*models.Team, error)

	// FindByCreatorID finds the team created by a given user, if any
	FindByCreatorID(userID uint64) (*models.Team, error)

	// JoinCodeExists reports whether a join code is already assigned
	JoinCodeExists(code string) (bool, error)

	// CountMembers returns a team's current member count
	CountMembers(teamID uint64) (int64, error)

	// AdmitMember admits a user into a team. Capacity and the user's
	// current membership are re-validated at write time so that concurrent
	// joins can never push the member count past the team's capacity.
	AdmitMember(teamID uint64, maxMembers int, userID uint64) error

	// RemoveMember clears a user's team membership link
	RemoveMember(userID uint64) error

	// Disband deletes a team, clears every member's membership link and
	// unassigns the team's tasks, all in one transaction.
	Disband(teamID uint64) error

	// List returns all teams with their members preloaded
	List() ([]models.Team, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users ordered by name
	List() ([]models.User, error)
}
