package models

import (
	"time"
)

// AuditLog represents a single entry in the bounded audit trail
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	UserID    uint      `gorm:"not null" json:"userId"`
	UserName  string    `gorm:"size:100" json:"userName"`
	Action    string    `gorm:"size:100;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	Type      string    `gorm:"size:20;index" json:"type"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit entry categories
const (
	AuditTypeLoan      = "loan"
	AuditTypeInventory = "inventory"
	AuditTypeUser      = "user"
	AuditTypeSystem    = "system"
	AuditTypeReturn    = "return"
)

// MaxAuditEntries is the hard cap on retained audit entries; inserting past
// it evicts the oldest.
const MaxAuditEntries = 100
