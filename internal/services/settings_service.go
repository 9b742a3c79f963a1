package services

import (
	"context"

	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
)

// SettingsService manages the organization-wide settings record
type SettingsService struct {
	repo     repository.SettingsRepository
	auditSvc *AuditService
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo repository.SettingsRepository, auditSvc *AuditService) *SettingsService {
	return &SettingsService{repo: repo, auditSvc: auditSvc}
}

// Get returns the settings singleton
func (s *SettingsService) Get(ctx context.Context) (*models.SystemSettings, error) {
	return s.repo.Get(ctx)
}

// Contact returns the public contact subset of the settings
func (s *SettingsService) Contact(ctx context.Context) (*models.ContactResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	contact := settings.ToContactResponse()
	return &contact, nil
}

// UpdateSettingsInput carries the editable settings fields. Nil fields are
// left unchanged so partial updates never reset existing values.
type UpdateSettingsInput struct {
	AdminContactName    *string
	AdminContactEmail   *string
	AdminContactPhone   *string
	OrganizationName    *string
	MaxItemsPerUser     *int
	MaxLoanDurationDays *int
	IsRegistrationOpen  *bool
	Categories          []string
}

// Update applies the given fields to the settings singleton
func (s *SettingsService) Update(ctx context.Context, actorID uint, actorName string, input UpdateSettingsInput) (*models.SystemSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.AdminContactName != nil {
		settings.AdminContactName = *input.AdminContactName
	}
	if input.AdminContactEmail != nil {
		settings.AdminContactEmail = *input.AdminContactEmail
	}
	if input.AdminContactPhone != nil {
		settings.AdminContactPhone = *input.AdminContactPhone
	}
	if input.OrganizationName != nil {
		settings.OrganizationName = *input.OrganizationName
	}
	if input.MaxItemsPerUser != nil && *input.MaxItemsPerUser > 0 {
		settings.MaxItemsPerUser = *input.MaxItemsPerUser
	}
	if input.MaxLoanDurationDays != nil && *input.MaxLoanDurationDays > 0 {
		settings.MaxLoanDurationDays = *input.MaxLoanDurationDays
	}
	if input.IsRegistrationOpen != nil {
		settings.IsRegistrationOpen = *input.IsRegistrationOpen
	}
	if input.Categories != nil {
		settings.Categories = input.Categories
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, actorName, "Ubah Pengaturan",
		"Pengaturan sistem diperbarui", models.AuditTypeSystem)

	return settings, nil
}
