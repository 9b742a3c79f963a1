package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

// BarangRepository defines the interface for inventory item data access
type BarangRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Barang, error)
	Create(ctx context.Context, barang *models.Barang) error
	Update(ctx context.Context, barang *models.Barang) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Barang, int64, error)
	FindAll(ctx context.Context) ([]models.Barang, error)
	GetStats(ctx context.Context) (*BarangStats, error)
}

// BarangStats summarizes the inventory for the admin dashboard
type BarangStats struct {
	TotalItems     int64 `json:"total_items"`
	TotalStock     int64 `json:"total_stock"`
	Tersedia       int64 `json:"tersedia"`
	Dipinjam       int64 `json:"dipinjam"`
	Rusak          int64 `json:"rusak"`
	DalamPerbaikan int64 `json:"dalam_perbaikan"`
}

type barangRepository struct {
	db *gorm.DB
}

// NewBarangRepository creates a new inventory item repository
func NewBarangRepository(db *gorm.DB) BarangRepository {
	return &barangRepository{db: db}
}

func (r *barangRepository) FindByID(ctx context.Context, id uint) (*models.Barang, error) {
	var barang models.Barang
	if err := r.db.WithContext(ctx).First(&barang, id).Error; err != nil {
		return nil, err
	}
	return &barang, nil
}

func (r *barangRepository) Create(ctx context.Context, barang *models.Barang) error {
	return r.db.WithContext(ctx).Create(barang).Error
}

func (r *barangRepository) Update(ctx context.Context, barang *models.Barang) error {
	return r.db.WithContext(ctx).Save(barang).Error
}

func (r *barangRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Barang{}, id).Error
}

func (r *barangRepository) List(ctx context.Context, query *ListQuery) ([]models.Barang, int64, error) {
	var items []models.Barang
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Barang{})

	if query.Search != "" {
		term := "%" + query.Search + "%"
		db = db.Where("nama_alat ILIKE ? OR brand ILIKE ? OR seri ILIKE ?", term, term, term)
	}
	if jenis := query.Filters["jenis"]; jenis != "" {
		db = db.Where("jenis = ?", jenis)
	}
	if status := query.Filters["status"]; status != "" {
		db = db.Where("status = ?", status)
	}

	countDb := db.Session(&gorm.Session{})
	if err := countDb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if query.SortBy != "" {
		order = query.SortBy
		if strings.ToLower(query.SortDir) == "desc" {
			order += " DESC"
		} else {
			order += " ASC"
		}
	}

	err := db.Order(order).
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&items).Error
	return items, total, err
}

func (r *barangRepository) FindAll(ctx context.Context) ([]models.Barang, error) {
	var items []models.Barang
	err := r.db.WithContext(ctx).Order("nama_alat ASC").Find(&items).Error
	return items, err
}

func (r *barangRepository) GetStats(ctx context.Context) (*BarangStats, error) {
	stats := &BarangStats{}

	if err := r.db.WithContext(ctx).Model(&models.Barang{}).Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Barang{}).
		Select("COALESCE(SUM(stok), 0)").Scan(&stats.TotalStock).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		status string
		dest   *int64
	}{
		{models.ItemStatusTersedia, &stats.Tersedia},
		{models.ItemStatusDipinjam, &stats.Dipinjam},
		{models.ItemStatusRusak, &stats.Rusak},
		{models.ItemStatusDalamPerbaikan, &stats.DalamPerbaikan},
	}
	for _, c := range counts {
		if err := r.db.WithContext(ctx).Model(&models.Barang{}).
			Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return stats, nil
}
