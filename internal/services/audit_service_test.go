package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

func TestAuditService_Record_TrimsPastCap(t *testing.T) {
	var entries []*models.AuditLog
	trimmedTo := 0

	repo := &mockAuditRepo{
		mockCreate: func(ctx context.Context, entry *models.AuditLog) error {
			entries = append(entries, entry)
			return nil
		},
		mockCount: func(ctx context.Context) (int64, error) {
			return int64(len(entries)), nil
		},
		mockTrimToLimit: func(ctx context.Context, limit int) error {
			trimmedTo = limit
			entries = entries[len(entries)-limit:]
			return nil
		},
	}
	service := NewAuditService(repo)

	for i := 0; i < models.MaxAuditEntries; i++ {
		service.Record(context.Background(), 1, "Admin", "Aksi", "detail", models.AuditTypeSystem)
	}
	assert.Len(t, entries, models.MaxAuditEntries)
	assert.Zero(t, trimmedTo, "no trim while at the cap")

	// The entry past the cap evicts the oldest
	service.Record(context.Background(), 1, "Admin", "Aksi", "terakhir", models.AuditTypeSystem)
	assert.Equal(t, models.MaxAuditEntries, trimmedTo)
	assert.Len(t, entries, models.MaxAuditEntries)
	assert.Equal(t, "terakhir", entries[len(entries)-1].Details)
}

func TestAuditService_Record_UsesInjectedClock(t *testing.T) {
	var saved *models.AuditLog
	repo := &mockAuditRepo{
		mockCreate: func(ctx context.Context, entry *models.AuditLog) error {
			saved = entry
			return nil
		},
	}
	service := NewAuditService(repo)
	at := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return at }

	service.Record(context.Background(), 7, "Budi", "Pengajuan Peminjaman", "Kamera", models.AuditTypeLoan)
	assert.Equal(t, at, saved.Timestamp)
	assert.Equal(t, uint(7), saved.UserID)
	assert.Equal(t, models.AuditTypeLoan, saved.Type)
}

func TestAuditService_Record_CreateFailureIsSwallowed(t *testing.T) {
	repo := &mockAuditRepo{
		mockCreate: func(ctx context.Context, entry *models.AuditLog) error {
			return assert.AnError
		},
	}
	service := NewAuditService(repo)

	// Must not panic or propagate
	service.Record(context.Background(), 1, "Admin", "Aksi", "detail", models.AuditTypeSystem)
}

func TestAuditService_Trim_NoOpUnderCap(t *testing.T) {
	trimmed := false
	repo := &mockAuditRepo{
		mockCount: func(ctx context.Context) (int64, error) {
			return 40, nil
		},
		mockTrimToLimit: func(ctx context.Context, limit int) error {
			trimmed = true
			return nil
		},
	}
	service := NewAuditService(repo)

	assert.NoError(t, service.Trim(context.Background()))
	assert.False(t, trimmed)
}
