package database

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/pkg/logger"
)

// Migrate creates/updates the schema and seeds the records the system cannot
// run without: the settings singleton, an initial admin account, and the
// boot audit entry.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Barang{},
		&models.Peminjaman{},
		&models.SystemSettings{},
		&models.AuditLog{},
		&models.Notification{},
		&models.RefreshToken{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	if err := seedSettings(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedSettings(db *gorm.DB) error {
	var settings models.SystemSettings
	err := db.First(&settings).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := db.Create(models.DefaultSettings()).Error; err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	logger.Info("Seeded default system settings")
	return nil
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("adminpassword"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Nama:              "Admin Inventaris",
		Username:          "admin",
		Gmail:             "admin@stimbara.ac.id",
		Role:              models.RoleAdmin,
		EncryptedPassword: string(hashed),
		NIM:               "00000000",
		IsActive:          true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	bootEntry := &models.AuditLog{
		Timestamp: time.Now(),
		UserID:    admin.ID,
		UserName:  "Sistem",
		Action:    "Inisialisasi",
		Details:   "Sistem Inventaris Siap Digunakan",
		Type:      models.AuditTypeSystem,
	}
	if err := db.Create(bootEntry).Error; err != nil {
		return err
	}

	logger.Warn("Seeded initial admin user; change the default password", "username", admin.Username)
	return nil
}
