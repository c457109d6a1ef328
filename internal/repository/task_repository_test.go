package repository

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/enigmahq/taskboard/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockTaskRepo(t *testing.T) (sqlmock.Sqlmock, TaskRepository) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return mock, NewTaskRepository(db)
}

// The status transition must be qualified by the expected prior states so
// that a stale request affects zero rows instead of overwriting a
// concurrent transition.
func TestUpdateStatus_QualifiedByPriorStatus(t *testing.T) {
	mock, repo := setupMockTaskRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `tasks` SET `status`=?,`updated_at`=? WHERE id = ? AND status IN (?) AND `tasks`.`deleted_at` IS NULL")).
		WithArgs(string(models.TaskStatusAccepted), sqlmock.AnyArg(), uint64(42), string(models.TaskStatusAssigned)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rows, err := repo.UpdateStatus(42,
		[]models.TaskStatus{models.TaskStatusAssigned},
		models.TaskStatusAccepted)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_ZeroRowsWhenPreconditionLost(t *testing.T) {
	mock, repo := setupMockTaskRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET").
		WithArgs(string(models.TaskStatusClosed), sqlmock.AnyArg(), uint64(42),
			string(models.TaskStatusAssigned), string(models.TaskStatusAccepted),
			string(models.TaskStatusInProgress), string(models.TaskStatusCompleted)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	rows, err := repo.UpdateStatus(42,
		[]models.TaskStatus{
			models.TaskStatusAssigned,
			models.TaskStatusAccepted,
			models.TaskStatusInProgress,
			models.TaskStatusCompleted,
		},
		models.TaskStatusClosed)
	require.NoError(t, err)
	require.Zero(t, rows)

	require.NoError(t, mock.ExpectationsWereMet())
}
