package repository

import (
	"github.com/enigmahq/taskboard/internal/database"
	"github.com/enigmahq/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	// Authorization boundary: a scoped filter only ever widens to tasks the
	// user is directly assigned to or that target the user's team.
	if filter.VisibleToUserID != nil {
		if filter.VisibleToTeamID != nil {
			query = query.Where("tasks.assigned_to_id = ? OR tasks.team_id = ?",
				*filter.VisibleToUserID, *filter.VisibleToTeamID)
		} else {
			query = query.Where("tasks.assigned_to_id = ?", *filter.VisibleToUserID)
		}
	}

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.
		Preload("AssignedBy").
		Preload("AssignedTo").
		Preload("Team").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateStatus transitions a task's status with the prior state as the write
// qualifier. Concurrent transitions from the same state resolve to exactly
// one winner; losers observe zero rows affected.
func (r *GormTaskRepository) UpdateStatus(taskID uint64, from []models.TaskStatus, to models.TaskStatus) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND status IN ?", taskID, from).
		Update("status", to)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Delete removes a task and its dependent records in a transaction
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.ActivityLog{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// AddComment appends a comment to a task
func (r *GormTaskRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListComments returns a task's comments ordered by creation time
func (r *GormTaskRepository) ListComments(taskID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// AddActivity appends an activity-log entry to a task
func (r *GormTaskRepository) AddActivity(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

// ListActivity returns a task's activity log ordered by creation time
func (r *GormTaskRepository) ListActivity(taskID uint64) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	if err := r.db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateSubmission persists the submission comment, attachments and activity
// entry atomically so a partial failure never reads as a successful submission.
func (r *GormTaskRepository) CreateSubmission(comment *models.Comment, attachments []models.Attachment, entry *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(attachments) > 0 {
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return tx.Create(entry).Error
	})
}
