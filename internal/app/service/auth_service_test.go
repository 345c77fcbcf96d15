package service

import (
	"testing"
	"time"

	"github.com/asifdev/trendcart-backend/config"
	"github.com/asifdev/trendcart-backend/internal/app/model"
	"github.com/asifdev/trendcart-backend/internal/app/repository"
	"github.com/asifdev/trendcart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, &config.JWTConfig{
		Secret:             "test-jwt-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	})
}

func registerTestUser(t *testing.T, authService AuthService) *model.User {
	t.Helper()
	user, err := authService.Register(RegisterInput{
		Email:     "test@example.com",
		Username:  "testuser",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, err := authService.Register(RegisterInput{
		Email:     "test@example.com",
		Username:  "testuser",
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registerTestUser(t, authService)

	_, err := authService.Register(RegisterInput{
		Email:    "test@example.com",
		Username: "anotheruser",
		Password: "password456",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registerTestUser(t, authService)

	_, err := authService.Register(RegisterInput{
		Email:    "another@example.com",
		Username: "testuser",
		Password: "password456",
	})
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, err := authService.Register(RegisterInput{
		Email:    "short@example.com",
		Username: "shortpass",
		Password: "short",
	})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registered := registerTestUser(t, authService)

	user, tokens, err := authService.Login("test@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registerTestUser(t, authService)

	_, _, err := authService.Login("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registered := registerTestUser(t, authService)

	user, err := authService.GetProfile(registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)

	_, err = authService.GetProfile(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registered := registerTestUser(t, authService)

	user, err := authService.UpdateProfile(registered.ID, "New", "Name")
	require.NoError(t, err)
	assert.Equal(t, "New", user.FirstName)
	assert.Equal(t, "Name", user.LastName)
}

func TestAuthService_ChangePassword(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registered := registerTestUser(t, authService)

	err := authService.ChangePassword(registered.ID, "password123", "newpassword1", "newpassword1")
	require.NoError(t, err)

	// Old password no longer works, new one does
	_, _, err = authService.Login("test@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("test@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestAuthService_ChangePassword_Mismatch(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registered := registerTestUser(t, authService)

	err := authService.ChangePassword(registered.ID, "password123", "newpassword1", "different1")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registered := registerTestUser(t, authService)

	err := authService.ChangePassword(registered.ID, "wrongpassword", "newpassword1", "newpassword1")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_ChangePassword_TooShort(t *testing.T) {
	authService := setupAuthServiceTest(t)
	registered := registerTestUser(t, authService)

	err := authService.ChangePassword(registered.ID, "password123", "short", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
