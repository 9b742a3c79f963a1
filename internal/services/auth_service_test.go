package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/ukmstimbara/inventaris-api/internal/config"
	"github.com/ukmstimbara/inventaris-api/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTExpirationHours: 1}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := &mockUserRepo{}
	rtRepo := &mockRefreshTokenRepo{}
	service := NewAuthService(userRepo, rtRepo, testConfig())

	userRepo.mockFindByUsername = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{
			ID:                1,
			Nama:              "Budi",
			Username:          username,
			EncryptedPassword: hashPassword(t, "rahasia"),
			Role:              models.RoleAnggota,
			IsActive:          true,
		}, nil
	}

	result, err := service.Login(context.Background(), "budi", "rahasia")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "budi", result.User.Username)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := &mockUserRepo{}
	service := NewAuthService(userRepo, &mockRefreshTokenRepo{}, testConfig())

	userRepo.mockFindByUsername = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{
			Username:          username,
			EncryptedPassword: hashPassword(t, "rahasia"),
			IsActive:          true,
		}, nil
	}

	result, err := service.Login(context.Background(), "budi", "salah")
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := &mockUserRepo{}
	service := NewAuthService(userRepo, &mockRefreshTokenRepo{}, testConfig())

	userRepo.mockFindByUsername = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{
			Username:          username,
			EncryptedPassword: hashPassword(t, "rahasia"),
			IsActive:          false,
		}, nil
	}

	result, err := service.Login(context.Background(), "budi", "rahasia")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_RefreshToken_RotatesToken(t *testing.T) {
	userRepo := &mockUserRepo{}
	rtRepo := &mockRefreshTokenRepo{}
	service := NewAuthService(userRepo, rtRepo, testConfig())

	deleted := ""
	rtRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1, Token: token}, nil
	}
	rtRepo.mockDelete = func(ctx context.Context, token string) error {
		deleted = token
		return nil
	}
	userRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "budi", IsActive: true}, nil
	}

	result, err := service.RefreshToken(context.Background(), "lama")
	assert.NoError(t, err)
	assert.Equal(t, "lama", deleted)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, "lama", result.RefreshToken)
}

func TestAuthService_RefreshToken_InactiveUser(t *testing.T) {
	userRepo := &mockUserRepo{}
	rtRepo := &mockRefreshTokenRepo{}
	service := NewAuthService(userRepo, rtRepo, testConfig())

	rtRepo.mockFindByToken = func(ctx context.Context, token string) (*models.RefreshToken, error) {
		return &models.RefreshToken{UserID: 1}, nil
	}
	userRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsActive: false}, nil
	}

	result, err := service.RefreshToken(context.Background(), "token")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAccountInactive)
}
