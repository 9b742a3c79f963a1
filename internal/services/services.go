package services

import (
	"github.com/ukmstimbara/inventaris-api/internal/config"
	"github.com/ukmstimbara/inventaris-api/internal/jobs"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Barang       *BarangService
	Peminjaman   *PeminjamanService
	Settings     *SettingsService
	Notification *NotificationService
	Audit        *AuditService
	Email        *EmailService
	Export       *ExportService
	Report       *ReportService
	Stats        *StatsService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit)
	notificationSvc := NewNotificationService(repos.Notification, repos.User)
	emailSvc := NewEmailService(cfg)
	barangSvc := NewBarangService(repos.Barang, auditSvc)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, repos.Settings, notificationSvc, auditSvc, worker),
		Barang:       barangSvc,
		Peminjaman:   NewPeminjamanService(repos.Peminjaman, repos.User, repos.Settings, barangSvc, notificationSvc, emailSvc, auditSvc, worker),
		Settings:     NewSettingsService(repos.Settings, auditSvc),
		Notification: notificationSvc,
		Audit:        auditSvc,
		Email:        emailSvc,
		Export:       NewExportService(repos.Barang, repos.Peminjaman),
		Report:       NewReportService(repos.Peminjaman, repos.Settings),
		Stats:        NewStatsService(repos.Barang, repos.Peminjaman, repos.User, worker),
	}
}
