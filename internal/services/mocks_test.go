package services

import (
	"context"

	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
)

type mockBarangRepo struct {
	repository.BarangRepository
	mockFindByID func(ctx context.Context, id uint) (*models.Barang, error)
	mockFindAll  func(ctx context.Context) ([]models.Barang, error)
	mockCreate   func(ctx context.Context, barang *models.Barang) error
	mockUpdate   func(ctx context.Context, barang *models.Barang) error
	mockDelete   func(ctx context.Context, id uint) error
}

func (m *mockBarangRepo) FindAll(ctx context.Context) ([]models.Barang, error) {
	if m.mockFindAll != nil {
		return m.mockFindAll(ctx)
	}
	return nil, nil
}

func (m *mockBarangRepo) FindByID(ctx context.Context, id uint) (*models.Barang, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockBarangRepo) Create(ctx context.Context, barang *models.Barang) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, barang)
	}
	return nil
}

func (m *mockBarangRepo) Update(ctx context.Context, barang *models.Barang) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, barang)
	}
	return nil
}

func (m *mockBarangRepo) Delete(ctx context.Context, id uint) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, id)
	}
	return nil
}

type mockAuditRepo struct {
	repository.AuditRepository
	mockCreate      func(ctx context.Context, entry *models.AuditLog) error
	mockCount       func(ctx context.Context) (int64, error)
	mockTrimToLimit func(ctx context.Context, limit int) error
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, entry)
	}
	return nil
}

func (m *mockAuditRepo) Count(ctx context.Context) (int64, error) {
	if m.mockCount != nil {
		return m.mockCount(ctx)
	}
	return 0, nil
}

func (m *mockAuditRepo) TrimToLimit(ctx context.Context, limit int) error {
	if m.mockTrimToLimit != nil {
		return m.mockTrimToLimit(ctx, limit)
	}
	return nil
}

type mockPeminjamanRepo struct {
	repository.PeminjamanRepository
	mockFindByIDWithDetails func(ctx context.Context, id uint) (*models.Peminjaman, error)
	mockCreate              func(ctx context.Context, loan *models.Peminjaman) error
	mockUpdate              func(ctx context.Context, loan *models.Peminjaman) error
	mockCountActiveByUser   func(ctx context.Context, userID uint) (int64, error)
	mockFindOverdue         func(ctx context.Context) ([]models.Peminjaman, error)
	mockFindAllWithDetails  func(ctx context.Context) ([]models.Peminjaman, error)
}

func (m *mockPeminjamanRepo) FindAllWithDetails(ctx context.Context) ([]models.Peminjaman, error) {
	if m.mockFindAllWithDetails != nil {
		return m.mockFindAllWithDetails(ctx)
	}
	return nil, nil
}

func (m *mockPeminjamanRepo) FindByIDWithDetails(ctx context.Context, id uint) (*models.Peminjaman, error) {
	return m.mockFindByIDWithDetails(ctx, id)
}

func (m *mockPeminjamanRepo) Create(ctx context.Context, loan *models.Peminjaman) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, loan)
	}
	return nil
}

func (m *mockPeminjamanRepo) Update(ctx context.Context, loan *models.Peminjaman) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, loan)
	}
	return nil
}

func (m *mockPeminjamanRepo) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	if m.mockCountActiveByUser != nil {
		return m.mockCountActiveByUser(ctx, userID)
	}
	return 0, nil
}

func (m *mockPeminjamanRepo) FindOverdue(ctx context.Context) ([]models.Peminjaman, error) {
	if m.mockFindOverdue != nil {
		return m.mockFindOverdue(ctx)
	}
	return nil, nil
}

type mockUserRepo struct {
	repository.UserRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.User, error)
	mockFindByUsername func(ctx context.Context, username string) (*models.User, error)
	mockFindByGmail    func(ctx context.Context, gmail string) (*models.User, error)
	mockCreate         func(ctx context.Context, user *models.User) error
	mockUpdate         func(ctx context.Context, user *models.User) error
	mockFindAdmins     func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.mockFindByUsername(ctx, username)
}

func (m *mockUserRepo) FindByGmail(ctx context.Context, gmail string) (*models.User, error) {
	return m.mockFindByGmail(ctx, gmail)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindAdmins(ctx context.Context) ([]models.User, error) {
	if m.mockFindAdmins != nil {
		return m.mockFindAdmins(ctx)
	}
	return nil, nil
}

type mockSettingsRepo struct {
	repository.SettingsRepository
	mockGet    func(ctx context.Context) (*models.SystemSettings, error)
	mockUpdate func(ctx context.Context, settings *models.SystemSettings) error
}

func (m *mockSettingsRepo) Get(ctx context.Context) (*models.SystemSettings, error) {
	return m.mockGet(ctx)
}

func (m *mockSettingsRepo) Update(ctx context.Context, settings *models.SystemSettings) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, settings)
	}
	return nil
}

type mockNotificationRepo struct {
	repository.NotificationRepository
	mockCreate func(ctx context.Context, notification *models.Notification) error
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, notification)
	}
	return nil
}

type mockRefreshTokenRepo struct {
	repository.RefreshTokenRepository
	mockCreate      func(ctx context.Context, token *models.RefreshToken) error
	mockFindByToken func(ctx context.Context, token string) (*models.RefreshToken, error)
	mockDelete      func(ctx context.Context, token string) error
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return m.mockFindByToken(ctx, token)
}

func (m *mockRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	if m.mockDelete != nil {
		return m.mockDelete(ctx, token)
	}
	return nil
}
