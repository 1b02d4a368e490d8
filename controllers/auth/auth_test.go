package authControllers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SUSHIbit/online-food-ordering-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}))
	return db
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)

	user, err := Register(db, RegisterRequest{
		Username: "suhana",
		Email:    "suhana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleCustomer, user.Role)
	require.Equal(t, models.UserStatusActive, user.Status)
	require.NotEqual(t, "secret123", user.PasswordHash)

	// Registration provisions the user's cart
	var cart models.Cart
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&cart).Error)

	got, token, err := Login(db, LoginRequest{Username: "suhana", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, user.ID, got.ID)

	// Email works in place of username
	_, _, err = Login(db, LoginRequest{Username: "suhana@example.com", Password: "secret123"})
	require.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	_, err := Register(db, RegisterRequest{
		Username: "tariq",
		Email:    "tariq@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, _, err = Login(db, LoginRequest{Username: "tariq", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = Login(db, LoginRequest{Username: "nobody", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRefusedForInactiveAccount(t *testing.T) {
	db := setupTestDB(t)
	user, err := Register(db, RegisterRequest{
		Username: "umar",
		Email:    "umar@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("status", models.UserStatusInactive).Error)

	_, _, err = Login(db, LoginRequest{Username: "umar", Password: "secret123"})
	require.ErrorIs(t, err, ErrAccountInactive)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	_, err := Register(db, RegisterRequest{
		Username: "wawa",
		Email:    "wawa@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = Register(db, RegisterRequest{
		Username: "wawa",
		Email:    "other@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
}
