package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

// PeminjamanRepository defines the interface for loan record data access
type PeminjamanRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Peminjaman, error)
	FindByIDWithDetails(ctx context.Context, id uint) (*models.Peminjaman, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Peminjaman, error)
	Create(ctx context.Context, loan *models.Peminjaman) error
	Update(ctx context.Context, loan *models.Peminjaman) error
	List(ctx context.Context, query *PeminjamanQuery) ([]models.Peminjaman, int64, error)
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)
	FindOverdue(ctx context.Context) ([]models.Peminjaman, error)
	FindAllWithDetails(ctx context.Context) ([]models.Peminjaman, error)
	GetStats(ctx context.Context) (*PeminjamanStats, error)
}

// PeminjamanQuery extends ListQuery with loan-specific filters
type PeminjamanQuery struct {
	*ListQuery
	UserID  uint
	IsAdmin bool
	Status  string
}

// PeminjamanStats summarizes loan records for the admin dashboard
type PeminjamanStats struct {
	Total     int64 `json:"total"`
	Menunggu  int64 `json:"menunggu"`
	Disetujui int64 `json:"disetujui"`
	Ditolak   int64 `json:"ditolak"`
	Selesai   int64 `json:"selesai"`
}

type peminjamanRepository struct {
	db *gorm.DB
}

// NewPeminjamanRepository creates a new loan repository
func NewPeminjamanRepository(db *gorm.DB) PeminjamanRepository {
	return &peminjamanRepository{db: db}
}

func (r *peminjamanRepository) FindByID(ctx context.Context, id uint) (*models.Peminjaman, error) {
	var loan models.Peminjaman
	if err := r.db.WithContext(ctx).First(&loan, id).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *peminjamanRepository) FindByIDWithDetails(ctx context.Context, id uint) (*models.Peminjaman, error) {
	var loan models.Peminjaman
	err := r.db.WithContext(ctx).
		Preload("Barang").
		Preload("User").
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *peminjamanRepository) FindByUser(ctx context.Context, userID uint) ([]models.Peminjaman, error) {
	var loans []models.Peminjaman
	err := r.db.WithContext(ctx).
		Where("id_user = ?", userID).
		Preload("Barang").
		Order("tanggal_pinjam DESC").
		Find(&loans).Error
	return loans, err
}

func (r *peminjamanRepository) Create(ctx context.Context, loan *models.Peminjaman) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *peminjamanRepository) Update(ctx context.Context, loan *models.Peminjaman) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

func (r *peminjamanRepository) List(ctx context.Context, query *PeminjamanQuery) ([]models.Peminjaman, int64, error) {
	var loans []models.Peminjaman
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Peminjaman{})

	// Members only see their own loans
	if !query.IsAdmin {
		db = db.Where("id_user = ?", query.UserID)
	}
	if query.Status != "" {
		db = db.Where("peminjaman.status = ?", query.Status)
	}
	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Joins("JOIN barang ON barang.id = peminjaman.id_barang").
			Joins("JOIN users ON users.id = peminjaman.id_user").
			Where("barang.nama_alat ILIKE ? OR users.nama ILIKE ? OR users.nim ILIKE ?", term, term, term)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Pending requests surface first for the admin queue
	db = db.Order("(CASE WHEN peminjaman.status = '" + models.LoanStatusMenunggu + "' THEN 0 ELSE 1 END) ASC")
	if query.SortBy != "" {
		field := query.SortBy
		switch field {
		case "created_at", "tanggal_pinjam", "tanggal_kembali":
			field = "peminjaman." + field
		}
		order := field
		if strings.ToLower(query.SortDir) == "desc" {
			order += " DESC"
		} else {
			order += " ASC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("peminjaman.tanggal_pinjam DESC")
	}

	err := db.
		Select("peminjaman.*").
		Preload("Barang").
		Preload("User").
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&loans).Error
	return loans, total, err
}

func (r *peminjamanRepository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Peminjaman{}).
		Where("id_user = ? AND status IN ?", userID,
			[]string{models.LoanStatusMenunggu, models.LoanStatusDisetujui}).
		Count(&count).Error
	return count, err
}

func (r *peminjamanRepository) FindOverdue(ctx context.Context) ([]models.Peminjaman, error) {
	var loans []models.Peminjaman
	err := r.db.WithContext(ctx).
		Where("status = ? AND tanggal_kembali < CURRENT_DATE", models.LoanStatusDisetujui).
		Preload("Barang").
		Preload("User").
		Order("tanggal_kembali ASC").
		Find(&loans).Error
	return loans, err
}

func (r *peminjamanRepository) FindAllWithDetails(ctx context.Context) ([]models.Peminjaman, error) {
	var loans []models.Peminjaman
	err := r.db.WithContext(ctx).
		Preload("Barang").
		Preload("User").
		Order("created_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *peminjamanRepository) GetStats(ctx context.Context) (*PeminjamanStats, error) {
	stats := &PeminjamanStats{}

	if err := r.db.WithContext(ctx).Model(&models.Peminjaman{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		status string
		dest   *int64
	}{
		{models.LoanStatusMenunggu, &stats.Menunggu},
		{models.LoanStatusDisetujui, &stats.Disetujui},
		{models.LoanStatusDitolak, &stats.Ditolak},
		{models.LoanStatusSelesai, &stats.Selesai},
	}
	for _, c := range counts {
		if err := r.db.WithContext(ctx).Model(&models.Peminjaman{}).
			Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}
