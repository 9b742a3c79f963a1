package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
	"github.com/ukmstimbara/inventaris-api/pkg/logger"
)

// NotificationService manages in-app notifications
type NotificationService struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo}
}

// NotifyUser creates a notification addressed to a single user
func (s *NotificationService) NotifyUser(ctx context.Context, userID uint, title, message, notifType string) error {
	notification := &models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: &notifType,
	}
	return s.repo.Create(ctx, notification)
}

// NotifyAdmins fans a notification out to every admin account
func (s *NotificationService) NotifyAdmins(ctx context.Context, title, message, notifType string) error {
	admins, err := s.userRepo.FindAdmins(ctx)
	if err != nil {
		return err
	}

	for _, admin := range admins {
		if err := s.NotifyUser(ctx, admin.ID, title, message, notifType); err != nil {
			logger.Error("failed to notify admin", "admin_id", admin.ID, "error", err)
		}
	}
	return nil
}

// ListForUser returns a user's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID uint, query *repository.ListQuery) ([]models.Notification, int64, error) {
	return s.repo.FindByUser(ctx, userID, query)
}

// MarkAsRead marks a single notification as read, verifying ownership
func (s *NotificationService) MarkAsRead(ctx context.Context, userID, notificationID uint) (*models.Notification, error) {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if notification.UserID != userID {
		return nil, ErrUnauthorized
	}

	if notification.IsRead() {
		return notification, nil
	}

	notification.MarkAsRead()
	if err := s.repo.Update(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// MarkAllAsRead marks every unread notification of a user as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uint) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
