package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/jobs"
	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
)

// UserService handles user account management
type UserService struct {
	repo            repository.UserRepository
	settingsRepo    repository.SettingsRepository
	notificationSvc *NotificationService
	auditSvc        *AuditService
	worker          *jobs.Worker
}

// NewUserService creates a new user service
func NewUserService(
	repo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	notificationSvc *NotificationService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *UserService {
	return &UserService{
		repo:            repo,
		settingsRepo:    settingsRepo,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		worker:          worker,
	}
}

// RegisterInput carries the fields for self registration
type RegisterInput struct {
	Nama     string
	Username string
	Gmail    string
	Password string
	NIM      string
}

// Register creates a member account when registration is open
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.IsRegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrDuplicate
	}
	if input.Gmail != "" {
		if _, err := s.repo.FindByGmail(ctx, input.Gmail); err == nil {
			return nil, ErrDuplicate
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Nama:              input.Nama,
		Username:          input.Username,
		Gmail:             input.Gmail,
		EncryptedPassword: string(hashed),
		Role:              models.RoleAnggota,
		NIM:               input.NIM,
		IsActive:          true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, user.ID, user.Nama, "Registrasi Anggota",
		fmt.Sprintf("Anggota baru terdaftar: %s (%s)", user.Nama, user.Username), models.AuditTypeUser)

	nama := user.Nama
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Anggota baru terdaftar",
			fmt.Sprintf("Anggota baru terdaftar: %s", nama),
			models.NotificationTypeNewUser)
	})

	return user, nil
}

// CreateUserInput carries the fields for admin-side account creation
type CreateUserInput struct {
	Nama     string
	Username string
	Gmail    string
	Password string
	Role     string
	NIM      string
}

// Create creates an account with an explicit role, bypassing the registration gate
func (s *UserService) Create(ctx context.Context, actorID uint, actorName string, input CreateUserInput) (*models.User, error) {
	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role != models.RoleAdmin {
		role = models.RoleAnggota
	}

	user := &models.User{
		Nama:              input.Nama,
		Username:          input.Username,
		Gmail:             input.Gmail,
		EncryptedPassword: string(hashed),
		Role:              role,
		NIM:               input.NIM,
		IsActive:          true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, actorName, "Tambah Pengguna",
		fmt.Sprintf("Pengguna %s (%s) ditambahkan dengan role %s", user.Nama, user.Username, user.Role), models.AuditTypeUser)

	return user, nil
}

// FindByID returns a user by id
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput carries the editable profile fields
type UpdateProfileInput struct {
	Nama           *string
	Gmail          *string
	NIM            *string
	ProfilePicture *string
}

// UpdateProfile updates a user's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nama != nil {
		user.Nama = *input.Nama
	}
	if input.Gmail != nil {
		user.Gmail = *input.Gmail
	}
	if input.NIM != nil {
		user.NIM = *input.NIM
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new one
func (s *UserService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(currentPassword)); err != nil {
		return ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.EncryptedPassword = string(hashed)
	return s.repo.Update(ctx, user)
}

// ToggleStatus flips a user's active flag
func (s *UserService) ToggleStatus(ctx context.Context, actorID uint, actorName string, id uint) (*models.User, error) {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	status := "dinonaktifkan"
	if user.IsActive {
		status = "diaktifkan"
	}
	s.auditSvc.Record(ctx, actorID, actorName, "Ubah Status Pengguna",
		fmt.Sprintf("Akun %s %s", user.Username, status), models.AuditTypeUser)

	return user, nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, actorID uint, actorName string, id uint) error {
	user, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, actorID, actorName, "Hapus Pengguna",
		fmt.Sprintf("Pengguna %s (%s) dihapus", user.Nama, user.Username), models.AuditTypeUser)

	return nil
}

// List returns a filtered, paginated page of users
func (s *UserService) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.repo.List(ctx, query)
}
