package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

// AuditRepository defines the interface for audit trail data access.
// The trail is bounded: TrimToLimit deletes everything but the newest N
// entries so the log behaves like the capped, newest-first history the
// admin screen expects.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error)
	Count(ctx context.Context) (int64, error)
	TrimToLimit(ctx context.Context, limit int) error
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	return logs, total, err
}

func (r *auditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AuditLog{}).Count(&count).Error
	return count, err
}

func (r *auditRepository) TrimToLimit(ctx context.Context, limit int) error {
	// Keep the newest `limit` entries, evict the rest (oldest first by
	// timestamp, id as tie-break).
	subQuery := r.db.Model(&models.AuditLog{}).
		Select("id").
		Order("timestamp DESC, id DESC").
		Limit(limit)
	return r.db.WithContext(ctx).
		Where("id NOT IN (?)", subQuery).
		Delete(&models.AuditLog{}).Error
}
