package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/webplanner/webplanner-api/internal/database"
	"github.com/webplanner/webplanner-api/internal/dto"
	"github.com/webplanner/webplanner-api/internal/models"
	"github.com/webplanner/webplanner-api/internal/repository"
	"github.com/webplanner/webplanner-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	authService := services.NewAuthService(userRepo, sessionRepo)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "newuser",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
	require.NotEmpty(t, response.ID)
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "taken",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "taken",
		"password": "othersecret",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Register_UsernamesAreCaseSensitive(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "Alice",
		"password": "uppersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// A different casing is a different account, not a conflict
	w = postJSON(t, r, "/api/auth/register", map[string]string{
		"username": "alice",
		"password": "lowersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Each spelling logs into its own account with its own password
	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "Alice",
		"password": "uppersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var upper dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upper))
	require.Equal(t, "Alice", upper.User.Username)

	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "lowersecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var lower dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lower))
	require.Equal(t, "alice", lower.User.Username)
	require.NotEqual(t, upper.User.ID, lower.User.ID)

	// Cross-casing credentials never match
	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "uppersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing", response.User.Username)
	require.NotEmpty(t, response.Token)

	// The issued token resolves back to the user
	userID, err := env.authService.Resolve(response.Token)
	require.NoError(t, err)
	require.Equal(t, response.User.ID, userID)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "unknown",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username: "current-user",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Username, response.Username)
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username: "leaving",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", user.ID)

	env.handler.DeleteAccount(c)

	require.Equal(t, http.StatusOK, w.Code)

	_, err = env.authService.GetUser(user.ID)
	require.ErrorIs(t, err, services.ErrUserNotFound)
}
