package models

import (
	"time"
)

// Barang represents a loanable inventory item with a stock count
type Barang struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NamaAlat  string    `gorm:"column:nama_alat;not null" json:"nama_alat"`
	Jenis     string    `gorm:"index" json:"jenis"`
	Brand     string    `json:"brand"`
	Seri      string    `json:"seri"`
	Kondisi   string    `json:"kondisi"`
	Status    string    `gorm:"default:Tersedia;index" json:"status"`
	Stok      int       `gorm:"not null;default:0" json:"stok"`
	Catatan   string    `gorm:"type:text" json:"catatan"`
	Foto      string    `json:"foto"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// TableName specifies the table name for Barang
func (Barang) TableName() string {
	return "barang"
}

// Item status constants
const (
	ItemStatusTersedia       = "Tersedia"
	ItemStatusDipinjam       = "Dipinjam"
	ItemStatusRusak          = "Rusak"
	ItemStatusDalamPerbaikan = "Dalam Perbaikan"
)

// IsAvailable returns true if the item can be borrowed
func (b *Barang) IsAvailable() bool {
	return b.Status == ItemStatusTersedia && b.Stok > 0
}

// DeriveStatus projects an item's availability status from its stock count.
// Admin-set maintenance states (Rusak, Dalam Perbaikan) are never overridden
// by the ledger; otherwise zero stock means Dipinjam and anything above means
// Tersedia.
func DeriveStatus(stok int, current string) string {
	if current == ItemStatusRusak || current == ItemStatusDalamPerbaikan {
		return current
	}
	if stok == 0 {
		return ItemStatusDipinjam
	}
	return ItemStatusTersedia
}
