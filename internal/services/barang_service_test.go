package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

func newTestBarangService(repo *mockBarangRepo) *BarangService {
	return NewBarangService(repo, NewAuditService(&mockAuditRepo{}))
}

func TestBarangService_AdjustStock_ClampsAtZero(t *testing.T) {
	var saved *models.Barang
	repo := &mockBarangRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Barang, error) {
			return &models.Barang{ID: id, NamaAlat: "Kamera", Stok: 0, Status: models.ItemStatusDipinjam}, nil
		},
		mockUpdate: func(ctx context.Context, barang *models.Barang) error {
			saved = barang
			return nil
		},
	}
	service := newTestBarangService(repo)

	err := service.AdjustStock(context.Background(), 1, -1)
	assert.NoError(t, err)
	assert.Equal(t, 0, saved.Stok)
	assert.Equal(t, models.ItemStatusDipinjam, saved.Status)
}

func TestBarangService_AdjustStock_RestoresAvailability(t *testing.T) {
	var saved *models.Barang
	repo := &mockBarangRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Barang, error) {
			return &models.Barang{ID: id, NamaAlat: "Tripod", Stok: 0, Status: models.ItemStatusDipinjam}, nil
		},
		mockUpdate: func(ctx context.Context, barang *models.Barang) error {
			saved = barang
			return nil
		},
	}
	service := newTestBarangService(repo)

	err := service.AdjustStock(context.Background(), 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, saved.Stok)
	assert.Equal(t, models.ItemStatusTersedia, saved.Status)
}

func TestBarangService_AdjustStock_MaintenanceStatusSticks(t *testing.T) {
	var saved *models.Barang
	repo := &mockBarangRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Barang, error) {
			return &models.Barang{ID: id, NamaAlat: "Mixer", Stok: 2, Status: models.ItemStatusRusak}, nil
		},
		mockUpdate: func(ctx context.Context, barang *models.Barang) error {
			saved = barang
			return nil
		},
	}
	service := newTestBarangService(repo)

	err := service.AdjustStock(context.Background(), 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, saved.Stok)
	assert.Equal(t, models.ItemStatusRusak, saved.Status)
}

func TestBarangService_AdjustStock_UnknownItemIsNoOp(t *testing.T) {
	updated := false
	repo := &mockBarangRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Barang, error) {
			return nil, gorm.ErrRecordNotFound
		},
		mockUpdate: func(ctx context.Context, barang *models.Barang) error {
			updated = true
			return nil
		},
	}
	service := newTestBarangService(repo)

	err := service.AdjustStock(context.Background(), 99, -1)
	assert.NoError(t, err)
	assert.False(t, updated)
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		stok    int
		current string
		want    string
	}{
		{"zero stock means borrowed", 0, models.ItemStatusTersedia, models.ItemStatusDipinjam},
		{"positive stock means available", 3, models.ItemStatusDipinjam, models.ItemStatusTersedia},
		{"rusak sticks regardless of stock", 5, models.ItemStatusRusak, models.ItemStatusRusak},
		{"dalam perbaikan sticks at zero", 0, models.ItemStatusDalamPerbaikan, models.ItemStatusDalamPerbaikan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.DeriveStatus(tt.stok, tt.current))
		})
	}
}

func TestBarangService_FindByID_NotFound(t *testing.T) {
	repo := &mockBarangRepo{
		mockFindByID: func(ctx context.Context, id uint) (*models.Barang, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	service := newTestBarangService(repo)

	_, err := service.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}
