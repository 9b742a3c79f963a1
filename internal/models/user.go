package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member or administrator account
type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Nama              string    `gorm:"not null" json:"nama"`
	Username          string    `gorm:"uniqueIndex;not null" json:"username"`
	Gmail             string    `gorm:"uniqueIndex;not null" json:"gmail"`
	Role              string    `gorm:"default:anggota;index" json:"role"`
	EncryptedPassword string    `gorm:"column:encrypted_password;not null" json:"-"`
	NIM               string    `gorm:"column:nim" json:"nim"`
	ProfilePicture    string    `json:"profilePicture"`
	IsActive          bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Associations
	Peminjaman    []Peminjaman   `gorm:"foreignKey:IDUser" json:"peminjaman,omitempty"`
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook for setting defaults
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleAnggota
	}
	return nil
}

// Role constants
const (
	RoleAdmin   = "admin"
	RoleAnggota = "anggota"
)

// IsAdmin returns true if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse is the JSON response format for users
type UserResponse struct {
	ID             uint      `json:"id"`
	Nama           string    `json:"nama"`
	Username       string    `json:"username"`
	Gmail          string    `json:"gmail"`
	Role           string    `json:"role"`
	NIM            string    `json:"nim"`
	ProfilePicture string    `json:"profilePicture"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		Nama:           u.Nama,
		Username:       u.Username,
		Gmail:          u.Gmail,
		Role:           u.Role,
		NIM:            u.NIM,
		ProfilePicture: u.ProfilePicture,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
