package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/webplanner/webplanner-api/internal/database"
	"github.com/webplanner/webplanner-api/internal/dto"
	"github.com/webplanner/webplanner-api/internal/models"
	"github.com/webplanner/webplanner-api/internal/repository"
	"github.com/webplanner/webplanner-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SubtaskHandlerTestSuite defines the test suite for SubtaskHandler
type SubtaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *SubtaskHandler
}

// SetupTest runs before each test
func (suite *SubtaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Subtask{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	subtaskRepo := repository.NewSubtaskRepository(suite.db)
	suite.handler = NewSubtaskHandler(services.NewSubtaskService(subtaskRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *SubtaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *SubtaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *SubtaskHandlerTestSuite) createTestTask(ownerID, title string) *models.Task {
	task := &models.Task{
		OwnerID:  ownerID,
		Title:    title,
		Priority: 3,
	}
	suite.db.Create(task)
	return task
}

func (suite *SubtaskHandlerTestSuite) createTestSubtask(taskID, title string, position int) *models.Subtask {
	subtask := &models.Subtask{
		TaskID:   taskID,
		Title:    title,
		Position: position,
	}
	suite.db.Create(subtask)
	return subtask
}

func (suite *SubtaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set("user_id", userID)

	return c, w
}

// TestAddSubtask_Success tests appending a subtask
func (suite *SubtaskHandlerTestSuite) TestAddSubtask_Success() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask(user.ID, "parent")

	var before models.Task
	suite.db.First(&before, "id = ?", task.ID)

	body := []byte(`{"title":"first step"}`)
	c, w := suite.createAuthContext("POST", "/api/tasks/"+task.ID+"/subtasks", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: task.ID}}

	suite.handler.AddSubtask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.SubtaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), response.ID)
	assert.Equal(suite.T(), "first step", response.Title)
	assert.False(suite.T(), response.Done)

	// The parent's updated_at was refreshed by the same operation
	var after models.Task
	suite.db.First(&after, "id = ?", task.ID)
	assert.True(suite.T(), after.UpdatedAt.After(before.UpdatedAt))
}

// TestAddSubtask_AppendsInOrder tests list ordering by position
func (suite *SubtaskHandlerTestSuite) TestAddSubtask_AppendsInOrder() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask(user.ID, "parent")

	for _, title := range []string{"one", "two", "three"} {
		body, _ := json.Marshal(map[string]string{"title": title})
		c, w := suite.createAuthContext("POST", "/api/tasks/"+task.ID+"/subtasks", body, user.ID)
		c.Params = gin.Params{{Key: "id", Value: task.ID}}
		suite.handler.AddSubtask(c)
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	var subtasks []models.Subtask
	suite.db.Where("task_id = ?", task.ID).Order("position ASC").Find(&subtasks)
	suite.Require().Len(subtasks, 3)
	assert.Equal(suite.T(), "one", subtasks[0].Title)
	assert.Equal(suite.T(), "two", subtasks[1].Title)
	assert.Equal(suite.T(), "three", subtasks[2].Title)
}

// TestAddSubtask_PositionAfterDelete tests that appending after a mid-list
// deletion never reuses a live position
func (suite *SubtaskHandlerTestSuite) TestAddSubtask_PositionAfterDelete() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask(user.ID, "parent")
	first := suite.createTestSubtask(task.ID, "one", 0)
	suite.createTestSubtask(task.ID, "two", 1)
	suite.createTestSubtask(task.ID, "three", 2)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/"+task.ID+"/subtasks/"+first.ID, nil, user.ID)
	c.Params = gin.Params{
		{Key: "id", Value: task.ID},
		{Key: "subtask_id", Value: first.ID},
	}
	suite.handler.DeleteSubtask(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	body := []byte(`{"title":"four"}`)
	c, w = suite.createAuthContext("POST", "/api/tasks/"+task.ID+"/subtasks", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: task.ID}}
	suite.handler.AddSubtask(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var subtasks []models.Subtask
	suite.db.Where("task_id = ?", task.ID).Order("position ASC").Find(&subtasks)
	suite.Require().Len(subtasks, 3)
	assert.Equal(suite.T(), "two", subtasks[0].Title)
	assert.Equal(suite.T(), "three", subtasks[1].Title)
	assert.Equal(suite.T(), "four", subtasks[2].Title)
	assert.Equal(suite.T(), 3, subtasks[2].Position)
}

// TestAddSubtask_ForeignOwner tests the conflated not-found on foreign tasks
func (suite *SubtaskHandlerTestSuite) TestAddSubtask_ForeignOwner() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	task := suite.createTestTask(alice.ID, "private")

	body := []byte(`{"title":"intruder"}`)
	c, w := suite.createAuthContext("POST", "/api/tasks/"+task.ID+"/subtasks", body, bob.ID)
	c.Params = gin.Params{{Key: "id", Value: task.ID}}

	suite.handler.AddSubtask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Subtask{}).Where("task_id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestAddSubtask_InvalidTaskID tests the invalid identity fast path
func (suite *SubtaskHandlerTestSuite) TestAddSubtask_InvalidTaskID() {
	user := suite.createTestUser("alice")

	body := []byte(`{"title":"whatever"}`)
	c, w := suite.createAuthContext("POST", "/api/tasks/nope/subtasks", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	suite.handler.AddSubtask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateSubtask_Success tests a partial subtask update
func (suite *SubtaskHandlerTestSuite) TestUpdateSubtask_Success() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask(user.ID, "parent")
	subtask := suite.createTestSubtask(task.ID, "step", 0)

	body := []byte(`{"done": true}`)
	c, w := suite.createAuthContext("PATCH", "/api/tasks/"+task.ID+"/subtasks/"+subtask.ID, body, user.ID)
	c.Params = gin.Params{
		{Key: "id", Value: task.ID},
		{Key: "subtask_id", Value: subtask.ID},
	}

	suite.handler.UpdateSubtask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Subtask
	suite.db.First(&stored, "id = ?", subtask.ID)
	assert.True(suite.T(), stored.Done)
	assert.Equal(suite.T(), "step", stored.Title)
}

// TestUpdateSubtask_MissingSubtask tests not-found for an absent subtask id
// inside an otherwise valid task
func (suite *SubtaskHandlerTestSuite) TestUpdateSubtask_MissingSubtask() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask(user.ID, "parent")

	var before models.Task
	suite.db.First(&before, "id = ?", task.ID)

	body := []byte(`{"done": true}`)
	c, w := suite.createAuthContext("PATCH", "/api/tasks/"+task.ID+"/subtasks/"+uuid.NewString(), body, user.ID)
	c.Params = gin.Params{
		{Key: "id", Value: task.ID},
		{Key: "subtask_id", Value: uuid.NewString()},
	}

	suite.handler.UpdateSubtask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// The failed mutation did not bump the parent's timestamp
	var after models.Task
	suite.db.First(&after, "id = ?", task.ID)
	assert.True(suite.T(), after.UpdatedAt.Equal(before.UpdatedAt))
}

// TestUpdateSubtask_ForeignOwner tests ownership on subtask edits
func (suite *SubtaskHandlerTestSuite) TestUpdateSubtask_ForeignOwner() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	task := suite.createTestTask(alice.ID, "private")
	subtask := suite.createTestSubtask(task.ID, "step", 0)

	body := []byte(`{"title":"defaced"}`)
	c, w := suite.createAuthContext("PATCH", "/api/tasks/"+task.ID+"/subtasks/"+subtask.ID, body, bob.ID)
	c.Params = gin.Params{
		{Key: "id", Value: task.ID},
		{Key: "subtask_id", Value: subtask.ID},
	}

	suite.handler.UpdateSubtask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var stored models.Subtask
	suite.db.First(&stored, "id = ?", subtask.ID)
	assert.Equal(suite.T(), "step", stored.Title)
}

// TestDeleteSubtask_Success tests subtask removal
func (suite *SubtaskHandlerTestSuite) TestDeleteSubtask_Success() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask(user.ID, "parent")
	subtask := suite.createTestSubtask(task.ID, "step", 0)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/"+task.ID+"/subtasks/"+subtask.ID, nil, user.ID)
	c.Params = gin.Params{
		{Key: "id", Value: task.ID},
		{Key: "subtask_id", Value: subtask.ID},
	}
	suite.handler.DeleteSubtask(c)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Subtask{}).Where("id = ?", subtask.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	// Deleting again reports not found
	c, w = suite.createAuthContext("DELETE", "/api/tasks/"+task.ID+"/subtasks/"+subtask.ID, nil, user.ID)
	c.Params = gin.Params{
		{Key: "id", Value: task.ID},
		{Key: "subtask_id", Value: subtask.ID},
	}
	suite.handler.DeleteSubtask(c)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestDeleteSubtask_ForeignOwner tests ownership on subtask deletion
func (suite *SubtaskHandlerTestSuite) TestDeleteSubtask_ForeignOwner() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	task := suite.createTestTask(alice.ID, "private")
	subtask := suite.createTestSubtask(task.ID, "step", 0)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/"+task.ID+"/subtasks/"+subtask.ID, nil, bob.ID)
	c.Params = gin.Params{
		{Key: "id", Value: task.ID},
		{Key: "subtask_id", Value: subtask.ID},
	}

	suite.handler.DeleteSubtask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Subtask{}).Where("id = ?", subtask.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestSubtaskHandlerTestSuite runs the test suite
func TestSubtaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SubtaskHandlerTestSuite))
}
