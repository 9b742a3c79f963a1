package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukmstimbara/inventaris-api/internal/config"
	"github.com/ukmstimbara/inventaris-api/internal/jobs"
	"github.com/ukmstimbara/inventaris-api/internal/models"
)

type loanServiceMocks struct {
	loans    *mockPeminjamanRepo
	users    *mockUserRepo
	settings *mockSettingsRepo
	barang   *mockBarangRepo
	audits   *mockAuditRepo
}

func newTestPeminjamanService(t *testing.T) (*PeminjamanService, *loanServiceMocks) {
	t.Helper()

	mocks := &loanServiceMocks{
		loans:    &mockPeminjamanRepo{},
		users:    &mockUserRepo{},
		settings: &mockSettingsRepo{},
		barang:   &mockBarangRepo{},
		audits:   &mockAuditRepo{},
	}
	mocks.settings.mockGet = func(ctx context.Context) (*models.SystemSettings, error) {
		return models.DefaultSettings(), nil
	}

	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	auditSvc := NewAuditService(mocks.audits)
	barangSvc := NewBarangService(mocks.barang, auditSvc)
	notificationSvc := NewNotificationService(&mockNotificationRepo{}, mocks.users)
	emailSvc := NewEmailService(&config.Config{})

	svc := NewPeminjamanService(mocks.loans, mocks.users, mocks.settings, barangSvc, notificationSvc, emailSvc, auditSvc, worker)
	return svc, mocks
}

func pendingLoan(stok int) *models.Peminjaman {
	return &models.Peminjaman{
		ID:             1,
		IDBarang:       10,
		IDUser:         5,
		Status:         models.LoanStatusMenunggu,
		TanggalPinjam:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TanggalKembali: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Barang:         models.Barang{ID: 10, NamaAlat: "Kamera", Stok: stok, Status: models.ItemStatusTersedia},
		User:           models.User{ID: 5, Nama: "Budi"},
	}
}

func admin() *models.User {
	return &models.User{ID: 1, Nama: "Admin", Role: models.RoleAdmin}
}

func TestPeminjamanService_Approve_DebitsStock(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	loan := pendingLoan(2)
	var savedLoan *models.Peminjaman
	var savedItem *models.Barang
	var audited []*models.AuditLog

	mocks.loans.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Peminjaman, error) {
		return loan, nil
	}
	mocks.loans.mockUpdate = func(ctx context.Context, l *models.Peminjaman) error {
		savedLoan = l
		return nil
	}
	mocks.barang.mockFindByID = func(ctx context.Context, id uint) (*models.Barang, error) {
		return &models.Barang{ID: id, NamaAlat: "Kamera", Stok: 2, Status: models.ItemStatusTersedia}, nil
	}
	mocks.barang.mockUpdate = func(ctx context.Context, b *models.Barang) error {
		savedItem = b
		return nil
	}
	mocks.audits.mockCreate = func(ctx context.Context, entry *models.AuditLog) error {
		audited = append(audited, entry)
		return nil
	}

	result, err := svc.Approve(context.Background(), admin(), 1)
	assert.NoError(t, err)
	assert.Equal(t, models.LoanStatusDisetujui, result.Status)
	assert.Equal(t, models.LoanStatusDisetujui, savedLoan.Status)
	assert.Equal(t, 1, savedItem.Stok)
	assert.Len(t, audited, 1)
	assert.Equal(t, models.AuditTypeLoan, audited[0].Type)
}

func TestPeminjamanService_Approve_ZeroStockRefused(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	loan := pendingLoan(0)
	updated := false

	mocks.loans.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Peminjaman, error) {
		return loan, nil
	}
	mocks.loans.mockUpdate = func(ctx context.Context, l *models.Peminjaman) error {
		updated = true
		return nil
	}

	_, err := svc.Approve(context.Background(), admin(), 1)
	assert.ErrorIs(t, err, ErrStokHabis)
	assert.Equal(t, models.LoanStatusMenunggu, loan.Status)
	assert.False(t, updated)
}

func TestPeminjamanService_Approve_OnlyFromPending(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	for _, status := range []string{models.LoanStatusDisetujui, models.LoanStatusDitolak, models.LoanStatusSelesai} {
		loan := pendingLoan(2)
		loan.Status = status
		mocks.loans.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Peminjaman, error) {
			return loan, nil
		}

		_, err := svc.Approve(context.Background(), admin(), 1)
		assert.ErrorIs(t, err, ErrInvalidState, "status %s", status)
		assert.Equal(t, status, loan.Status)
	}
}

func TestPeminjamanService_Reject_LeavesStockUntouched(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	loan := pendingLoan(2)
	stockTouched := false

	mocks.loans.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Peminjaman, error) {
		return loan, nil
	}
	mocks.barang.mockFindByID = func(ctx context.Context, id uint) (*models.Barang, error) {
		stockTouched = true
		return &models.Barang{ID: id}, nil
	}

	result, err := svc.Reject(context.Background(), admin(), 1)
	assert.NoError(t, err)
	assert.Equal(t, models.LoanStatusDitolak, result.Status)
	assert.False(t, stockTouched)
}

func TestPeminjamanService_Return_CreditsStockAndStampsDates(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	returnedAt := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return returnedAt }

	loan := pendingLoan(0)
	loan.Status = models.LoanStatusDisetujui
	var savedItem *models.Barang
	var audited []*models.AuditLog

	mocks.loans.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Peminjaman, error) {
		return loan, nil
	}
	mocks.barang.mockFindByID = func(ctx context.Context, id uint) (*models.Barang, error) {
		return &models.Barang{ID: id, NamaAlat: "Kamera", Stok: 0, Status: models.ItemStatusDipinjam}, nil
	}
	mocks.barang.mockUpdate = func(ctx context.Context, b *models.Barang) error {
		savedItem = b
		return nil
	}
	mocks.audits.mockCreate = func(ctx context.Context, entry *models.AuditLog) error {
		audited = append(audited, entry)
		return nil
	}

	borrower := &models.User{ID: 5, Nama: "Budi", Role: models.RoleAnggota}
	result, err := svc.Return(context.Background(), borrower, 1, ReturnInput{
		KondisiPengembalian: "Baik",
		BuktiFotoKembali:    "bukti/foto.jpg",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.LoanStatusSelesai, result.Status)
	assert.Equal(t, returnedAt, *result.TanggalPengembalianAktual)
	assert.Equal(t, "Baik", *result.KondisiPengembalian)
	assert.Equal(t, 1, savedItem.Stok)
	assert.Equal(t, models.ItemStatusTersedia, savedItem.Status)
	assert.Len(t, audited, 1)
	assert.Equal(t, models.AuditTypeReturn, audited[0].Type)
}

func TestPeminjamanService_Return_RequiresEvidence(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	loan := pendingLoan(0)
	loan.Status = models.LoanStatusDisetujui
	mocks.loans.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Peminjaman, error) {
		return loan, nil
	}

	borrower := &models.User{ID: 5, Role: models.RoleAnggota}
	_, err := svc.Return(context.Background(), borrower, 1, ReturnInput{KondisiPengembalian: "Baik"})
	assert.ErrorIs(t, err, ErrMissingEvidence)
	assert.Equal(t, models.LoanStatusDisetujui, loan.Status)
}

func TestPeminjamanService_Return_DoubleReturnBlocked(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	loan := pendingLoan(1)
	loan.Status = models.LoanStatusSelesai
	stockTouched := false

	mocks.loans.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Peminjaman, error) {
		return loan, nil
	}
	mocks.barang.mockFindByID = func(ctx context.Context, id uint) (*models.Barang, error) {
		stockTouched = true
		return &models.Barang{ID: id}, nil
	}

	borrower := &models.User{ID: 5, Role: models.RoleAnggota}
	_, err := svc.Return(context.Background(), borrower, 1, ReturnInput{
		KondisiPengembalian: "Baik",
		BuktiFotoKembali:    "bukti/foto.jpg",
	})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.False(t, stockTouched)
}

func TestPeminjamanService_Return_OnlyBorrowerOrAdmin(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	loan := pendingLoan(0)
	loan.Status = models.LoanStatusDisetujui
	mocks.loans.mockFindByIDWithDetails = func(ctx context.Context, id uint) (*models.Peminjaman, error) {
		return loan, nil
	}

	stranger := &models.User{ID: 77, Role: models.RoleAnggota}
	_, err := svc.Return(context.Background(), stranger, 1, ReturnInput{
		KondisiPengembalian: "Baik",
		BuktiFotoKembali:    "bukti/foto.jpg",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPeminjamanService_Submit_Validation(t *testing.T) {
	svc, _ := newTestPeminjamanService(t)
	borrower := &models.User{ID: 5, Nama: "Budi"}
	pinjam := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Submit(context.Background(), borrower, SubmitLoanInput{
		TanggalPinjam:  pinjam,
		TanggalKembali: pinjam.AddDate(0, 0, 3),
	})
	assert.ErrorIs(t, err, ErrNoItemsSelected)

	_, err = svc.Submit(context.Background(), borrower, SubmitLoanInput{
		ItemIDs:        []uint{10},
		TanggalPinjam:  pinjam,
		TanggalKembali: pinjam.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestPeminjamanService_Submit_EnforcesLoanPolicy(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	mocks.settings.mockGet = func(ctx context.Context) (*models.SystemSettings, error) {
		return &models.SystemSettings{MaxItemsPerUser: 2, MaxLoanDurationDays: 7}, nil
	}

	borrower := &models.User{ID: 5, Nama: "Budi"}
	pinjam := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Too long
	_, err := svc.Submit(context.Background(), borrower, SubmitLoanInput{
		ItemIDs:        []uint{10},
		TanggalPinjam:  pinjam,
		TanggalKembali: pinjam.AddDate(0, 0, 8),
	})
	assert.ErrorIs(t, err, ErrLoanTooLong)

	// Active loans plus the new request exceed the per-user cap
	mocks.loans.mockCountActiveByUser = func(ctx context.Context, userID uint) (int64, error) {
		return 2, nil
	}
	_, err = svc.Submit(context.Background(), borrower, SubmitLoanInput{
		ItemIDs:        []uint{10},
		TanggalPinjam:  pinjam,
		TanggalKembali: pinjam.AddDate(0, 0, 3),
	})
	assert.ErrorIs(t, err, ErrLoanLimitReached)
}

func TestPeminjamanService_Submit_CreatesOneLoanPerItem(t *testing.T) {
	svc, mocks := newTestPeminjamanService(t)

	var created []*models.Peminjaman
	mocks.barang.mockFindByID = func(ctx context.Context, id uint) (*models.Barang, error) {
		return &models.Barang{ID: id, NamaAlat: "Alat", Stok: 3, Status: models.ItemStatusTersedia}, nil
	}
	mocks.loans.mockCreate = func(ctx context.Context, loan *models.Peminjaman) error {
		loan.ID = uint(len(created) + 1)
		created = append(created, loan)
		return nil
	}

	borrower := &models.User{ID: 5, Nama: "Budi"}
	pinjam := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	loans, err := svc.Submit(context.Background(), borrower, SubmitLoanInput{
		ItemIDs:        []uint{10, 11, 12},
		TanggalPinjam:  pinjam,
		TanggalKembali: pinjam.AddDate(0, 0, 3),
		Keterangan:     "Dokumentasi acara",
	})
	assert.NoError(t, err)
	assert.Len(t, loans, 3)
	assert.Len(t, created, 3)
	for _, loan := range loans {
		assert.Equal(t, models.LoanStatusMenunggu, loan.Status)
		assert.Equal(t, borrower.ID, loan.IDUser)
	}
}
