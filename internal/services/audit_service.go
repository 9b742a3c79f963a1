package services

import (
	"context"
	"time"

	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
	"github.com/ukmstimbara/inventaris-api/pkg/logger"
)

// AuditService maintains the bounded audit trail. Every stock-affecting or
// account-affecting action records one entry; after each insert the trail is
// trimmed back to models.MaxAuditEntries, oldest first.
type AuditService struct {
	repo repository.AuditRepository
	now  func() time.Time
}

func NewAuditService(repo repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo, now: time.Now}
}

// Record appends an audit entry and evicts the oldest entries past the cap.
// Audit failures are logged, never propagated: the action that triggered the
// entry has already happened.
func (s *AuditService) Record(ctx context.Context, userID uint, userName, action, details, entryType string) {
	entry := &models.AuditLog{
		Timestamp: s.now(),
		UserID:    userID,
		UserName:  userName,
		Action:    action,
		Details:   details,
		Type:      entryType,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry", "action", action, "error", err)
		return
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		logger.Error("Failed to count audit entries", "error", err)
		return
	}
	if count > models.MaxAuditEntries {
		if err := s.repo.TrimToLimit(ctx, models.MaxAuditEntries); err != nil {
			logger.Error("Failed to trim audit trail", "error", err)
		}
	}
}

// List retrieves audit entries, newest first
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, limit, offset)
}

// Trim enforces the retention cap; run periodically as a safety net in case
// a Record call failed between insert and trim.
func (s *AuditService) Trim(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count <= models.MaxAuditEntries {
		return nil
	}
	return s.repo.TrimToLimit(ctx, models.MaxAuditEntries)
}
