package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/jobs"
	"github.com/ukmstimbara/inventaris-api/internal/models"
)

func newTestUserService(t *testing.T, users *mockUserRepo, settings *mockSettingsRepo) *UserService {
	t.Helper()
	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	auditSvc := NewAuditService(&mockAuditRepo{})
	notificationSvc := NewNotificationService(&mockNotificationRepo{}, users)
	return NewUserService(users, settings, notificationSvc, auditSvc, worker)
}

func TestUserService_Register_ClosedRegistration(t *testing.T) {
	settings := &mockSettingsRepo{
		mockGet: func(ctx context.Context) (*models.SystemSettings, error) {
			return &models.SystemSettings{IsRegistrationOpen: false}, nil
		},
	}
	service := newTestUserService(t, &mockUserRepo{}, settings)

	user, err := service.Register(context.Background(), RegisterInput{
		Nama:     "Budi",
		Username: "budi",
		Password: "rahasia",
	})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{Username: username}, nil
		},
	}
	settings := &mockSettingsRepo{
		mockGet: func(ctx context.Context) (*models.SystemSettings, error) {
			return &models.SystemSettings{IsRegistrationOpen: true}, nil
		},
	}
	service := newTestUserService(t, users, settings)

	user, err := service.Register(context.Background(), RegisterInput{
		Nama:     "Budi",
		Username: "budi",
		Password: "rahasia",
	})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserService_Register_CreatesActiveMember(t *testing.T) {
	var created *models.User
	users := &mockUserRepo{
		mockFindByUsername: func(ctx context.Context, username string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		mockCreate: func(ctx context.Context, user *models.User) error {
			user.ID = 9
			created = user
			return nil
		},
	}
	settings := &mockSettingsRepo{
		mockGet: func(ctx context.Context) (*models.SystemSettings, error) {
			return &models.SystemSettings{IsRegistrationOpen: true}, nil
		},
	}
	service := newTestUserService(t, users, settings)

	user, err := service.Register(context.Background(), RegisterInput{
		Nama:     "Budi",
		Username: "budi",
		Password: "rahasia",
		NIM:      "2026001",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAnggota, created.Role)
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "rahasia", created.EncryptedPassword)
	assert.Equal(t, uint(9), user.ID)
}

func TestUserService_ToggleStatus_Flips(t *testing.T) {
	var saved *models.User
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "budi", IsActive: true}, nil
		},
		mockUpdate: func(ctx context.Context, user *models.User) error {
			saved = user
			return nil
		},
	}
	service := newTestUserService(t, users, &mockSettingsRepo{})

	user, err := service.ToggleStatus(context.Background(), 1, "Admin", 9)
	assert.NoError(t, err)
	assert.False(t, user.IsActive)
	assert.False(t, saved.IsActive)
}

func TestUserService_ChangePassword_VerifiesCurrent(t *testing.T) {
	users := &mockUserRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, EncryptedPassword: hashPassword(t, "lama")}, nil
		},
	}
	service := newTestUserService(t, users, &mockSettingsRepo{})

	err := service.ChangePassword(context.Background(), 1, "salah", "baru123")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	err = service.ChangePassword(context.Background(), 1, "lama", "baru123")
	assert.NoError(t, err)
}
