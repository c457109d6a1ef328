package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/enigmahq/taskboard/internal/constants"
	"github.com/enigmahq/taskboard/internal/database"
	"github.com/enigmahq/taskboard/internal/dto"
	"github.com/enigmahq/taskboard/internal/models"
	"github.com/enigmahq/taskboard/internal/repository"
	"github.com/enigmahq/taskboard/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.Task{},
		&models.Comment{},
		&models.Attachment{},
		&models.ActivityLog{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	taskService := services.NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewTeamRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TaskHandlerTestSuite) createTestUser(email string, role models.UserRole) *models.User {
	user := &models.User{
		Name:         strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTeam(name string, creatorID uint64, maxMembers int) *models.Team {
	team := &models.Team{
		Name:       name,
		JoinCode:   strings.ToUpper(name),
		MaxMembers: maxMembers,
		IsActive:   true,
		CreatorID:  creatorID,
	}
	suite.db.Create(team)
	return team
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, status models.TaskStatus, assignedByID uint64, assignedToID, teamID *uint64) *models.Task {
	task := &models.Task{
		Title:        title,
		Description:  "A sufficiently long description",
		Priority:     models.TaskPriorityMedium,
		Status:       status,
		AssignedByID: assignedByID,
		AssignedToID: assignedToID,
		TeamID:       teamID,
	}
	suite.db.Create(task)
	return task
}

func (suite *TaskHandlerTestSuite) addUserToTeam(user *models.User, team *models.Team) {
	suite.db.Model(user).Update("team_id", team.ID)
	user.TeamID = &team.ID
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *TaskHandlerTestSuite) setTaskParam(c *gin.Context, taskID uint64) {
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(taskID, 10)}}
}

func (suite *TaskHandlerTestSuite) taskStatus(taskID uint64) models.TaskStatus {
	var task models.Task
	suite.db.First(&task, taskID)
	return task.Status
}

// TestCreateTask_Success tests task creation by an admin
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)

	requestBody := map[string]interface{}{
		"title":          "Prepare venue",
		"description":    "Book and set up the main auditorium",
		"priority":       "HIGH",
		"assigned_to_id": member.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, admin.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Prepare venue", response.Title)
	assert.Equal(suite.T(), models.TaskStatusAssigned, response.Status)
	assert.Equal(suite.T(), admin.ID, response.AssignedByID)

	// Creation is recorded in the audit trail
	var entry models.ActivityLog
	err = suite.db.Where("task_id = ? AND action = ?", response.ID, models.ActionTaskCreated).First(&entry).Error
	assert.NoError(suite.T(), err)
}

// TestCreateTask_NonAdmin tests that members cannot create tasks
func (suite *TaskHandlerTestSuite) TestCreateTask_NonAdmin() {
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)

	requestBody := map[string]interface{}{
		"title":       "Prepare venue",
		"description": "Book and set up the main auditorium",
		"priority":    "HIGH",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, member.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestCreateTask_ShortTitle tests title length validation
func (suite *TaskHandlerTestSuite) TestCreateTask_ShortTitle() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)

	requestBody := map[string]interface{}{
		"title":       "ab",
		"description": "Book and set up the main auditorium",
		"priority":    "HIGH",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, admin.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_DualAssignment tests that a task cannot target both a user and a team
func (suite *TaskHandlerTestSuite) TestCreateTask_DualAssignment() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	team := suite.createTestTeam("Alpha", member.ID, 3)

	requestBody := map[string]interface{}{
		"title":          "Prepare venue",
		"description":    "Book and set up the main auditorium",
		"priority":       "HIGH",
		"assigned_to_id": member.ID,
		"team_id":        team.ID,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, admin.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_MemberScope tests that members see only their own and their team's tasks
func (suite *TaskHandlerTestSuite) TestListTasks_MemberScope() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	other := suite.createTestUser("other@iiit.ac.in", models.RoleUser)
	team := suite.createTestTeam("Alpha", member.ID, 3)
	suite.addUserToTeam(member, team)

	suite.createTestTask("Mine", models.TaskStatusAssigned, admin.ID, &member.ID, nil)
	suite.createTestTask("Team task", models.TaskStatusAssigned, admin.ID, nil, &team.ID)
	suite.createTestTask("Not mine", models.TaskStatusAssigned, admin.ID, &other.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, member.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), response.TotalCount)

	titles := make([]string, len(response.Tasks))
	for i, task := range response.Tasks {
		titles[i] = task.Title
	}
	assert.ElementsMatch(suite.T(), []string{"Mine", "Team task"}, titles)
}

// TestListTasks_AdminSeesAll tests the admin listing scope
func (suite *TaskHandlerTestSuite) TestListTasks_AdminSeesAll() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	other := suite.createTestUser("other@iiit.ac.in", models.RoleUser)

	suite.createTestTask("One", models.TaskStatusAssigned, admin.ID, &member.ID, nil)
	suite.createTestTask("Two", models.TaskStatusAssigned, admin.ID, &other.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, admin.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskListResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), response.TotalCount)
}

// TestAcceptTask_Success tests the ASSIGNED -> ACCEPTED transition
func (suite *TaskHandlerTestSuite) TestAcceptTask_Success() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Accept me", models.TaskStatusAssigned, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/accept", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.AcceptTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), models.TaskStatusAccepted, suite.taskStatus(task.ID))

	var entry models.ActivityLog
	err := suite.db.Where("task_id = ? AND action = ?", task.ID, models.ActionTaskAccepted).First(&entry).Error
	assert.NoError(suite.T(), err)
}

// TestAcceptTask_TeamMember tests that a member of the assigned team may accept
func (suite *TaskHandlerTestSuite) TestAcceptTask_TeamMember() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	team := suite.createTestTeam("Alpha", member.ID, 3)
	suite.addUserToTeam(member, team)
	task := suite.createTestTask("Team task", models.TaskStatusAssigned, admin.ID, nil, &team.ID)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/accept", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.AcceptTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), models.TaskStatusAccepted, suite.taskStatus(task.ID))
}

// TestAcceptTask_NotParticipant tests acceptance by an unrelated user
func (suite *TaskHandlerTestSuite) TestAcceptTask_NotParticipant() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	stranger := suite.createTestUser("stranger@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Accept me", models.TaskStatusAssigned, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/accept", nil, stranger.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.AcceptTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), models.TaskStatusAssigned, suite.taskStatus(task.ID))
}

// TestAcceptTask_WrongStatus tests acceptance of an already completed task
func (suite *TaskHandlerTestSuite) TestAcceptTask_WrongStatus() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Done already", models.TaskStatusCompleted, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/accept", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.AcceptTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Equal(suite.T(), models.TaskStatusCompleted, suite.taskStatus(task.ID))
}

// TestStartTask_Success tests the ACCEPTED -> IN_PROGRESS transition
func (suite *TaskHandlerTestSuite) TestStartTask_Success() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Start me", models.TaskStatusAccepted, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/start", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.StartTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), models.TaskStatusInProgress, suite.taskStatus(task.ID))
}

// TestStartTask_NotAccepted tests starting work before acceptance
func (suite *TaskHandlerTestSuite) TestStartTask_NotAccepted() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Not accepted", models.TaskStatusAssigned, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/start", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.StartTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCompleteTask_FromInProgress tests the IN_PROGRESS -> COMPLETED transition
func (suite *TaskHandlerTestSuite) TestCompleteTask_FromInProgress() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Finish me", models.TaskStatusInProgress, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/complete", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.CompleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), models.TaskStatusCompleted, suite.taskStatus(task.ID))
}

// TestCloseTask_Admin tests closing by an administrator
func (suite *TaskHandlerTestSuite) TestCloseTask_Admin() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Close me", models.TaskStatusCompleted, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/close", nil, admin.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.CloseTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), models.TaskStatusClosed, suite.taskStatus(task.ID))
}

// TestCloseTask_NonAdmin tests that members cannot close tasks
func (suite *TaskHandlerTestSuite) TestCloseTask_NonAdmin() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Close me", models.TaskStatusCompleted, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/close", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.CloseTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
	assert.Equal(suite.T(), models.TaskStatusCompleted, suite.taskStatus(task.ID))
}

// TestCloseTask_AlreadyClosed tests closing a closed task
func (suite *TaskHandlerTestSuite) TestCloseTask_AlreadyClosed() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	task := suite.createTestTask("Closed", models.TaskStatusClosed, admin.ID, nil, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/close", nil, admin.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.CloseTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestReopenTask_Success tests the CLOSED -> ASSIGNED transition
func (suite *TaskHandlerTestSuite) TestReopenTask_Success() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	task := suite.createTestTask("Reopen me", models.TaskStatusClosed, admin.ID, nil, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/reopen", nil, admin.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.ReopenTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), models.TaskStatusAssigned, suite.taskStatus(task.ID))
}

// TestReopenTask_WrongStatus tests reopening an active task
func (suite *TaskHandlerTestSuite) TestReopenTask_WrongStatus() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	task := suite.createTestTask("Still active", models.TaskStatusAssigned, admin.ID, nil, nil)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/reopen", nil, admin.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.ReopenTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSubmitWork_Success tests the submission record
func (suite *TaskHandlerTestSuite) TestSubmitWork_Success() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("In progress", models.TaskStatusInProgress, admin.ID, &member.ID, nil)

	requestBody := map[string]interface{}{
		"content": "Finished the poster design",
		"attachments": []map[string]string{
			{"url": "/uploads/poster.png", "filename": "poster.png"},
		},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/submit", body, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.SubmitWork(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	// Submission is stored as a marked comment
	var comment models.Comment
	err := suite.db.Where("task_id = ?", task.ID).First(&comment).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "[SUBMISSION] Finished the poster design", comment.Content)

	var attachment models.Attachment
	err = suite.db.Where("task_id = ?", task.ID).First(&attachment).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "poster.png", attachment.Filename)

	var entry models.ActivityLog
	err = suite.db.Where("task_id = ? AND action = ?", task.ID, models.ActionWorkSubmitted).First(&entry).Error
	assert.NoError(suite.T(), err)

	// Submitting does not change the status
	assert.Equal(suite.T(), models.TaskStatusInProgress, suite.taskStatus(task.ID))
}

// TestSubmitWork_BlankContent tests that a whitespace-only submission leaves no records
func (suite *TaskHandlerTestSuite) TestSubmitWork_BlankContent() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("In progress", models.TaskStatusInProgress, admin.ID, &member.ID, nil)

	requestBody := map[string]interface{}{
		"content": "   ",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/submit", body, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.SubmitWork(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestDeleteTask_CascadesDependents tests deletion together with dependent records
func (suite *TaskHandlerTestSuite) TestDeleteTask_CascadesDependents() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Delete me", models.TaskStatusAssigned, admin.ID, &member.ID, nil)

	suite.db.Create(&models.Comment{TaskID: task.ID, AuthorID: member.ID, Content: "hello"})
	suite.db.Create(&models.ActivityLog{TaskID: task.ID, UserID: admin.ID, Action: models.ActionTaskCreated})

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, admin.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var deletedTask models.Task
	err := suite.db.First(&deletedTask, task.ID).Error
	assert.Error(suite.T(), err)

	var count int64
	suite.db.Model(&models.Comment{}).Where("task_id = ?", task.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestDeleteTask_NonAdmin tests deletion by a member
func (suite *TaskHandlerTestSuite) TestDeleteTask_NonAdmin() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Delete me", models.TaskStatusAssigned, admin.ID, &member.ID, nil)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestAddComment_Success tests appending a comment
func (suite *TaskHandlerTestSuite) TestAddComment_Success() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Discuss", models.TaskStatusAssigned, admin.ID, &member.ID, nil)

	requestBody := map[string]interface{}{
		"content": "Looks good to me",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/comments", body, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.AddComment(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.CommentDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Looks good to me", response.Content)
}

// TestListComments_Success tests listing a task's comments
func (suite *TaskHandlerTestSuite) TestListComments_Success() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Discuss", models.TaskStatusAssigned, admin.ID, &member.ID, nil)

	suite.db.Create(&models.Comment{TaskID: task.ID, AuthorID: member.ID, Content: "first"})
	suite.db.Create(&models.Comment{TaskID: task.ID, AuthorID: member.ID, Content: "second"})

	c, w := suite.createAuthContext("GET", "/api/tasks/1/comments", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.ListComments(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]dto.CommentDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response["comments"], 2)

	contents := []string{response["comments"][0].Content, response["comments"][1].Content}
	assert.ElementsMatch(suite.T(), []string{"first", "second"}, contents)
}

// TestListActivity_Success tests listing a task's audit trail
func (suite *TaskHandlerTestSuite) TestListActivity_Success() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)
	member := suite.createTestUser("member@iiit.ac.in", models.RoleUser)
	task := suite.createTestTask("Audited", models.TaskStatusAssigned, admin.ID, &member.ID, nil)

	suite.db.Create(&models.ActivityLog{TaskID: task.ID, UserID: admin.ID, Action: models.ActionTaskCreated})
	suite.db.Create(&models.ActivityLog{TaskID: task.ID, UserID: member.ID, Action: models.ActionTaskAccepted})

	c, w := suite.createAuthContext("GET", "/api/tasks/1/activity", nil, member.ID)
	suite.setTaskParam(c, task.ID)

	suite.handler.ListActivity(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]dto.ActivityLogDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response["activity"], 2)

	actions := []models.ActivityAction{response["activity"][0].Action, response["activity"][1].Action}
	assert.ElementsMatch(suite.T(), []models.ActivityAction{models.ActionTaskCreated, models.ActionTaskAccepted}, actions)
}

// TestGetTask_NotFound tests retrieval of a missing task
func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	admin := suite.createTestUser("admin@iiit.ac.in", models.RoleAdmin)

	c, w := suite.createAuthContext("GET", "/api/tasks/9999", nil, admin.ID)
	suite.setTaskParam(c, 9999)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
