package models

import (
	"time"
)

// SystemSettings is the singleton policy and contact configuration record.
// MaxItemsPerUser and MaxLoanDurationDays are enforced by loan submission.
type SystemSettings struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	AdminContactName    string    `json:"adminContactName"`
	AdminContactEmail   string    `json:"adminContactEmail"`
	AdminContactPhone   string    `json:"adminContactPhone"`
	OrganizationName    string    `json:"organizationName"`
	MaxItemsPerUser     int       `gorm:"default:5" json:"maxItemsPerUser"`
	MaxLoanDurationDays int       `gorm:"default:14" json:"maxLoanDurationDays"`
	IsRegistrationOpen  bool      `gorm:"default:true" json:"isRegistrationOpen"`
	Categories          []string  `gorm:"serializer:json" json:"categories"`
	UpdatedAt           time.Time `json:"-"`
}

// TableName specifies the table name for SystemSettings
func (SystemSettings) TableName() string {
	return "system_settings"
}

// ContactResponse is the public subset served to the help page
type ContactResponse struct {
	AdminContactName  string `json:"adminContactName"`
	AdminContactEmail string `json:"adminContactEmail"`
	AdminContactPhone string `json:"adminContactPhone"`
	OrganizationName  string `json:"organizationName"`
}

// ToContactResponse strips policy fields from the settings record
func (s *SystemSettings) ToContactResponse() ContactResponse {
	return ContactResponse{
		AdminContactName:  s.AdminContactName,
		AdminContactEmail: s.AdminContactEmail,
		AdminContactPhone: s.AdminContactPhone,
		OrganizationName:  s.OrganizationName,
	}
}

// DefaultSettings returns the settings row created on first boot
func DefaultSettings() *SystemSettings {
	return &SystemSettings{
		AdminContactName:    "Admin Inventaris",
		AdminContactEmail:   "helpdesk.ukm@stimbara.ac.id",
		AdminContactPhone:   "+62 812-0000-0000",
		OrganizationName:    "UKM STIMBARA",
		MaxItemsPerUser:     5,
		MaxLoanDurationDays: 14,
		IsRegistrationOpen:  true,
		Categories: []string{
			"Peralatan Kemah",
			"Tas & Ransel",
			"Peralatan Masak",
			"Peralatan Tidur",
			"Pakaian & Safety",
		},
	}
}
