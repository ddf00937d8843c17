package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/unity-hallie/freezer-backend/internal/constants"
	"github.com/unity-hallie/freezer-backend/internal/database"
	"github.com/unity-hallie/freezer-backend/internal/dto"
	"github.com/unity-hallie/freezer-backend/internal/models"
	"github.com/unity-hallie/freezer-backend/internal/repository"
	"github.com/unity-hallie/freezer-backend/internal/services"
)

// noopMailer satisfies services.Mailer without sending anything.
type noopMailer struct{}

func (noopMailer) Configured() bool                                { return false }
func (noopMailer) SendVerification(string, string) error           { return nil }
func (noopMailer) SendPasswordReset(string, string, string) error  { return nil }
func (noopMailer) SendHouseholdInvitation(_, _, _, _ string) error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Household{},
		&models.HouseholdMember{},
		&models.Location{},
		&models.Item{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db := openTestDB(t)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, noopMailer{}, testLogger())

	return authTestEnv{
		db:          db,
		handler:     NewAuthHandler(authService),
		authService: authService,
	}
}

func authRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", env.handler.Register)
	r.POST("/api/auth/login", env.handler.Login)
	r.POST("/api/auth/logout", env.handler.Logout)
	r.POST("/api/auth/verify-email", env.handler.VerifyEmail)
	r.POST("/api/auth/password-reset/request", env.handler.RequestPasswordReset)
	r.POST("/api/auth/password-reset/confirm", env.handler.ResetPassword)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload any) *httptest.ResponseRecorder {
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
	r := authRouter(env)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"email":     "New@Example.com",
		"password":  "supersecret",
		"full_name": "New User",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "new@example.com", response.Email, "email should be normalized")
	require.Equal(t, "New User", response.FullName)
	require.False(t, response.IsVerified)

	// The response body must never carry password material.
	require.NotContains(t, w.Body.String(), "password")
	require.NotContains(t, w.Body.String(), "supersecret")
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	payload := map[string]string{"email": "dup@example.com", "password": "supersecret"}
	require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/register", payload).Code)
	require.Equal(t, http.StatusConflict, postJSON(t, r, "/api/auth/register", payload).Code)
}

func TestAuthHandler_RegisterShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"email":    "short@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	_, err := env.authService.Register("existing@example.com", "supersecret", "Existing")
	require.NoError(t, err)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	_, err := env.authService.Register("existing@example.com", "supersecret", "")
	require.NoError(t, err)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "existing@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register("me@example.com", "supersecret", "Me")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.Me(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	user, err := env.authService.Register("verify@example.com", "supersecret", "")
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.NotEmpty(t, stored.VerificationToken)

	w := postJSON(t, r, "/api/auth/verify-email", map[string]string{"token": stored.VerificationToken})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.True(t, stored.IsVerified)
	require.Empty(t, stored.VerificationToken, "token must be single use")

	w = postJSON(t, r, "/api/auth/verify-email", map[string]string{"token": "bogus"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_PasswordResetFlow(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := authRouter(env)

	user, err := env.authService.Register("reset@example.com", "supersecret", "")
	require.NoError(t, err)

	// The request endpoint answers 200 regardless of whether the email
	// exists.
	w := postJSON(t, r, "/api/auth/password-reset/request", map[string]string{"email": "reset@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	w = postJSON(t, r, "/api/auth/password-reset/request", map[string]string{"email": "stranger@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.NotEmpty(t, stored.PasswordResetToken)

	w = postJSON(t, r, "/api/auth/password-reset/confirm", map[string]string{
		"token":        stored.PasswordResetToken,
		"new_password": "brand-new-password",
	})
	require.Equal(t, http.StatusOK, w.Code)

	_, err = env.authService.Login("reset@example.com", "brand-new-password")
	require.NoError(t, err)
	_, err = env.authService.Login("reset@example.com", "supersecret")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}
