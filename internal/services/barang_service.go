package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
)

// BarangService owns the inventory catalog and the stock ledger: every
// quantity mutation goes through AdjustStock so the availability status
// always reflects the stock count.
type BarangService struct {
	repo     repository.BarangRepository
	auditSvc *AuditService
}

func NewBarangService(repo repository.BarangRepository, auditSvc *AuditService) *BarangService {
	return &BarangService{repo: repo, auditSvc: auditSvc}
}

// FindByID gets an item by ID
func (s *BarangService) FindByID(ctx context.Context, id uint) (*models.Barang, error) {
	barang, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return barang, nil
}

func (s *BarangService) List(ctx context.Context, query *repository.ListQuery) ([]models.Barang, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *BarangService) FindAll(ctx context.Context) ([]models.Barang, error) {
	return s.repo.FindAll(ctx)
}

func (s *BarangService) GetStats(ctx context.Context) (*repository.BarangStats, error) {
	return s.repo.GetStats(ctx)
}

// Create registers a new inventory item
func (s *BarangService) Create(ctx context.Context, actorID uint, actorName string, barang *models.Barang) error {
	barang.Status = models.DeriveStatus(barang.Stok, barang.Status)

	if err := s.repo.Create(ctx, barang); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, actorID, actorName, "Tambah Barang",
		fmt.Sprintf("Menambahkan %s (stok %d)", barang.NamaAlat, barang.Stok),
		models.AuditTypeInventory)
	return nil
}

// Update edits an inventory item. The status is re-derived so an admin
// raising stock on a zeroed item brings it back to Tersedia, while an
// explicit Rusak / Dalam Perbaikan label sticks.
func (s *BarangService) Update(ctx context.Context, actorID uint, actorName string, barang *models.Barang) error {
	if _, err := s.FindByID(ctx, barang.ID); err != nil {
		return err
	}

	barang.Status = models.DeriveStatus(barang.Stok, barang.Status)

	if err := s.repo.Update(ctx, barang); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, actorID, actorName, "Edit Barang",
		fmt.Sprintf("Memperbarui data %s", barang.NamaAlat),
		models.AuditTypeInventory)
	return nil
}

// Delete removes an inventory item
func (s *BarangService) Delete(ctx context.Context, actorID uint, actorName string, id uint) error {
	barang, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, actorID, actorName, "Hapus Barang",
		fmt.Sprintf("Menghapus %s dari inventaris", barang.NamaAlat),
		models.AuditTypeInventory)
	return nil
}

// AdjustStock applies delta to the item's stock count, clamped at zero, and
// re-derives the availability status. An unknown item id is a silent no-op:
// callers always derive the id from a loaded loan record.
func (s *BarangService) AdjustStock(ctx context.Context, itemID uint, delta int) error {
	barang, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	stok := barang.Stok + delta
	if stok < 0 {
		stok = 0
	}
	barang.Stok = stok
	barang.Status = models.DeriveStatus(stok, barang.Status)

	return s.repo.Update(ctx, barang)
}
