package handlers

import (
	"github.com/ukmstimbara/inventaris-api/internal/services"
	"github.com/ukmstimbara/inventaris-api/internal/storage"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Barang       *BarangHandler
	Peminjaman   *PeminjamanHandler
	Settings     *SettingsHandler
	Notification *NotificationHandler
	Audit        *AuditHandler
	Export       *ExportHandler
	Stats        *StatsHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services, storage *storage.LocalStorage) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth, svcs.User),
		User:         NewUserHandler(svcs.User, storage),
		Barang:       NewBarangHandler(svcs.Barang, storage),
		Peminjaman:   NewPeminjamanHandler(svcs.Peminjaman, svcs.User, svcs.Report, storage),
		Settings:     NewSettingsHandler(svcs.Settings),
		Notification: NewNotificationHandler(svcs.Notification),
		Audit:        NewAuditHandler(svcs.Audit),
		Export:       NewExportHandler(svcs.Export),
		Stats:        NewStatsHandler(svcs.Stats),
	}
}
