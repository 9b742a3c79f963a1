package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/jobs"
	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
	"github.com/ukmstimbara/inventaris-api/internal/statemachine"
)

// PeminjamanService drives the loan lifecycle. Submission, approval,
// rejection and return each run their guards up front and then perform the
// loan write, the stock adjustment and the audit entry inside one method, so
// a guard failure leaves every record untouched.
type PeminjamanService struct {
	repo            repository.PeminjamanRepository
	userRepo        repository.UserRepository
	settingsRepo    repository.SettingsRepository
	barangSvc       *BarangService
	notificationSvc *NotificationService
	emailSvc        *EmailService
	auditSvc        *AuditService
	worker          *jobs.Worker
	now             func() time.Time
}

func NewPeminjamanService(
	repo repository.PeminjamanRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	barangSvc *BarangService,
	notificationSvc *NotificationService,
	emailSvc *EmailService,
	auditSvc *AuditService,
	worker *jobs.Worker,
) *PeminjamanService {
	return &PeminjamanService{
		repo:            repo,
		userRepo:        userRepo,
		settingsRepo:    settingsRepo,
		barangSvc:       barangSvc,
		notificationSvc: notificationSvc,
		emailSvc:        emailSvc,
		auditSvc:        auditSvc,
		worker:          worker,
		now:             time.Now,
	}
}

// SubmitLoanInput carries a member's loan request. Each selected item
// produces an independent loan record sharing the dates and justification.
type SubmitLoanInput struct {
	ItemIDs         []uint
	TanggalPinjam   time.Time
	TanggalKembali  time.Time
	Keterangan      string
	BuktiFotoPinjam string
}

// FindByID gets a loan by ID with item and borrower preloaded
func (s *PeminjamanService) FindByID(ctx context.Context, id uint) (*models.Peminjaman, error) {
	loan, err := s.repo.FindByIDWithDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return loan, nil
}

func (s *PeminjamanService) List(ctx context.Context, query *repository.PeminjamanQuery) ([]models.Peminjaman, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *PeminjamanService) GetStats(ctx context.Context) (*repository.PeminjamanStats, error) {
	return s.repo.GetStats(ctx)
}

// Submit validates a loan request and creates one Menunggu record per item.
// All guards run before the first record is created.
func (s *PeminjamanService) Submit(ctx context.Context, borrower *models.User, input SubmitLoanInput) ([]models.Peminjaman, error) {
	if len(input.ItemIDs) == 0 {
		return nil, ErrNoItemsSelected
	}
	if input.TanggalKembali.Before(input.TanggalPinjam) {
		return nil, ErrInvalidDateRange
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if settings.MaxLoanDurationDays > 0 {
		days := int(input.TanggalKembali.Sub(input.TanggalPinjam).Hours() / 24)
		if days > settings.MaxLoanDurationDays {
			return nil, fmt.Errorf("%w (maksimal %d hari)", ErrLoanTooLong, settings.MaxLoanDurationDays)
		}
	}

	if settings.MaxItemsPerUser > 0 {
		active, err := s.repo.CountActiveByUser(ctx, borrower.ID)
		if err != nil {
			return nil, err
		}
		if active+int64(len(input.ItemIDs)) > int64(settings.MaxItemsPerUser) {
			return nil, fmt.Errorf("%w (maksimal %d barang)", ErrLoanLimitReached, settings.MaxItemsPerUser)
		}
	}

	// Resolve every item before creating anything
	items := make([]*models.Barang, 0, len(input.ItemIDs))
	for _, itemID := range input.ItemIDs {
		barang, err := s.barangSvc.FindByID(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("barang %d: %w", itemID, err)
		}
		items = append(items, barang)
	}

	loans := make([]models.Peminjaman, 0, len(items))
	for _, barang := range items {
		loan := models.Peminjaman{
			IDBarang:        barang.ID,
			IDUser:          borrower.ID,
			TanggalPinjam:   input.TanggalPinjam,
			TanggalKembali:  input.TanggalKembali,
			Keterangan:      input.Keterangan,
			Status:          models.LoanStatusMenunggu,
			BuktiFotoPinjam: input.BuktiFotoPinjam,
		}
		if err := s.repo.Create(ctx, &loan); err != nil {
			return nil, err
		}
		loan.Barang = *barang
		loans = append(loans, loan)

		s.auditSvc.Record(ctx, borrower.ID, borrower.Nama, "Pengajuan Peminjaman",
			fmt.Sprintf("Mengajukan peminjaman %s", barang.NamaAlat),
			models.AuditTypeLoan)
	}

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Pengajuan peminjaman baru",
			fmt.Sprintf("%s mengajukan peminjaman %d barang", borrower.Nama, len(loans)),
			models.NotificationTypeLoanSubmitted)
	})

	return loans, nil
}

// Approve transitions a pending loan to Disetujui and debits one unit of
// stock. A loan whose item has no stock left is refused with ErrStokHabis
// and stays Menunggu.
func (s *PeminjamanService) Approve(ctx context.Context, actor *models.User, id uint) (*models.Peminjaman, error) {
	loan, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	machine := statemachine.NewLoanFSM(loan)
	if !machine.Can("approve") {
		return nil, fmt.Errorf("%w: peminjaman berstatus %s", ErrInvalidState, loan.Status)
	}
	if loan.Barang.Stok <= 0 {
		return nil, ErrStokHabis
	}

	if err := machine.Approve(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.barangSvc.AdjustStock(ctx, loan.IDBarang, -1); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actor.ID, actor.Nama, "Persetujuan Peminjaman",
		fmt.Sprintf("Menyetujui peminjaman %s oleh %s", loan.Barang.NamaAlat, loan.User.Nama),
		models.AuditTypeLoan)

	s.notifyBorrower(loan, "Pengajuan disetujui",
		fmt.Sprintf("Pengajuan peminjaman %s telah disetujui", loan.Barang.NamaAlat),
		models.NotificationTypeLoanApproved)
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.emailSvc.SendLoanApproved(ctx, &loan.User, loan)
	})

	return loan, nil
}

// Reject transitions a pending loan to Ditolak. Stock is untouched.
func (s *PeminjamanService) Reject(ctx context.Context, actor *models.User, id uint) (*models.Peminjaman, error) {
	loan, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	machine := statemachine.NewLoanFSM(loan)
	if err := machine.Reject(ctx); err != nil {
		return nil, fmt.Errorf("%w: peminjaman berstatus %s", ErrInvalidState, loan.Status)
	}

	if err := s.repo.Update(ctx, loan); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actor.ID, actor.Nama, "Penolakan Peminjaman",
		fmt.Sprintf("Menolak peminjaman %s oleh %s", loan.Barang.NamaAlat, loan.User.Nama),
		models.AuditTypeLoan)

	s.notifyBorrower(loan, "Pengajuan ditolak",
		fmt.Sprintf("Pengajuan peminjaman %s ditolak", loan.Barang.NamaAlat),
		models.NotificationTypeLoanRejected)
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.emailSvc.SendLoanRejected(ctx, &loan.User, loan)
	})

	return loan, nil
}

// ReturnInput carries the borrower's return submission
type ReturnInput struct {
	KondisiPengembalian string
	BuktiFotoKembali    string
}

// Return completes an approved loan: credits one unit of stock, stamps the
// actual return date and stores the return condition and evidence photo.
// Only the borrower (or an admin) may return, only from Disetujui, and only
// with an evidence photo.
func (s *PeminjamanService) Return(ctx context.Context, actor *models.User, id uint, input ReturnInput) (*models.Peminjaman, error) {
	loan, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if loan.IDUser != actor.ID && !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if input.BuktiFotoKembali == "" {
		return nil, ErrMissingEvidence
	}

	machine := statemachine.NewLoanFSM(loan)
	if err := machine.Complete(ctx); err != nil {
		return nil, fmt.Errorf("%w: peminjaman berstatus %s", ErrInvalidState, loan.Status)
	}

	returnedAt := s.now()
	loan.TanggalPengembalianAktual = &returnedAt
	loan.KondisiPengembalian = &input.KondisiPengembalian
	loan.BuktiFotoKembali = &input.BuktiFotoKembali

	if err := s.repo.Update(ctx, loan); err != nil {
		return nil, err
	}
	if err := s.barangSvc.AdjustStock(ctx, loan.IDBarang, 1); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actor.ID, actor.Nama, "Pengembalian",
		fmt.Sprintf("Mengembalikan %s", loan.Barang.NamaAlat),
		models.AuditTypeReturn)

	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyAdmins(ctx,
			"Barang dikembalikan",
			fmt.Sprintf("%s mengembalikan %s", loan.User.Nama, loan.Barang.NamaAlat),
			models.NotificationTypeLoanReturned)
	})

	return loan, nil
}

// CheckOverdueLoans notifies borrowers whose approved loans are past the
// requested return date. Runs from the scheduler.
func (s *PeminjamanService) CheckOverdueLoans(ctx context.Context) error {
	loans, err := s.repo.FindOverdue(ctx)
	if err != nil {
		return err
	}

	for _, loan := range loans {
		s.notificationSvc.NotifyUser(ctx, loan.IDUser,
			"Peminjaman terlambat",
			fmt.Sprintf("Batas pengembalian %s sudah lewat (%s)",
				loan.Barang.NamaAlat, loan.TanggalKembali.Format(models.DateFormat)),
			models.NotificationTypeLoanOverdue)
	}
	return nil
}

func (s *PeminjamanService) notifyBorrower(loan *models.Peminjaman, title, message, notifType string) {
	userID := loan.IDUser
	s.worker.EnqueueAsync(func(ctx context.Context) error {
		return s.notificationSvc.NotifyUser(ctx, userID, title, message, notifType)
	})
}
