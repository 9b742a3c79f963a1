package models

import (
	"time"
)

// Peminjaman represents a loan record for a single item over a date range
type Peminjaman struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	IDBarang        uint      `gorm:"column:id_barang;not null;index" json:"id_barang"`
	IDUser          uint      `gorm:"column:id_user;not null;index" json:"id_user"`
	TanggalPinjam   time.Time `gorm:"column:tanggal_pinjam;type:date;not null" json:"tanggal_pinjam"`
	TanggalKembali  time.Time `gorm:"column:tanggal_kembali;type:date;not null" json:"tanggal_kembali"`
	Keterangan      string    `gorm:"type:text" json:"keterangan"`
	Status          string    `gorm:"default:Menunggu;index" json:"status"`
	BuktiFotoPinjam string    `gorm:"column:bukti_foto_pinjam" json:"bukti_foto_pinjam"`

	// Return fields, set when the loan is completed
	TanggalPengembalianAktual *time.Time `gorm:"column:tanggal_pengembalian_aktual;type:date" json:"tanggal_pengembalian_aktual,omitempty"`
	KondisiPengembalian       *string    `gorm:"column:kondisi_pengembalian" json:"kondisi_pengembalian,omitempty"`
	BuktiFotoKembali          *string    `gorm:"column:bukti_foto_kembali" json:"bukti_foto_kembali,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Barang Barang `gorm:"foreignKey:IDBarang" json:"barang,omitempty"`
	User   User   `gorm:"foreignKey:IDUser" json:"user,omitempty"`
}

// TableName specifies the table name for Peminjaman
func (Peminjaman) TableName() string {
	return "peminjaman"
}

// Loan status constants
const (
	LoanStatusMenunggu  = "Menunggu"
	LoanStatusDisetujui = "Disetujui"
	LoanStatusDitolak   = "Ditolak"
	LoanStatusSelesai   = "Selesai"
)

// MayApprove returns true if the loan can be approved
func (p *Peminjaman) MayApprove() bool {
	return p.Status == LoanStatusMenunggu
}

// MayReject returns true if the loan can be rejected
func (p *Peminjaman) MayReject() bool {
	return p.Status == LoanStatusMenunggu
}

// MayComplete returns true if the loan can be returned.
// Ditolak and Selesai are terminal; only an approved loan can be completed,
// so a double return is never a valid transition.
func (p *Peminjaman) MayComplete() bool {
	return p.Status == LoanStatusDisetujui
}

// IsActive returns true if the loan counts against the borrower's quota
func (p *Peminjaman) IsActive() bool {
	return p.Status == LoanStatusMenunggu || p.Status == LoanStatusDisetujui
}

// IsOverdue returns true if an approved loan is past its requested return date
func (p *Peminjaman) IsOverdue(now time.Time) bool {
	return p.Status == LoanStatusDisetujui && now.After(p.TanggalKembali)
}

// PeminjamanResponse is the JSON response format for loans
type PeminjamanResponse struct {
	ID                        uint          `json:"id"`
	IDBarang                  uint          `json:"id_barang"`
	IDUser                    uint          `json:"id_user"`
	TanggalPinjam             string        `json:"tanggal_pinjam"`
	TanggalKembali            string        `json:"tanggal_kembali"`
	Keterangan                string        `json:"keterangan"`
	Status                    string        `json:"status"`
	BuktiFotoPinjam           string        `json:"bukti_foto_pinjam"`
	TanggalPengembalianAktual *string       `json:"tanggal_pengembalian_aktual,omitempty"`
	KondisiPengembalian       *string       `json:"kondisi_pengembalian,omitempty"`
	BuktiFotoKembali          *string       `json:"bukti_foto_kembali,omitempty"`
	Barang                    *Barang       `json:"barang,omitempty"`
	User                      *UserResponse `json:"user,omitempty"`
	CreatedAt                 time.Time     `json:"created_at"`
}

// DateFormat is the wire format for loan dates
const DateFormat = "2006-01-02"

// ToResponse converts Peminjaman to PeminjamanResponse
func (p *Peminjaman) ToResponse() PeminjamanResponse {
	resp := PeminjamanResponse{
		ID:                  p.ID,
		IDBarang:            p.IDBarang,
		IDUser:              p.IDUser,
		TanggalPinjam:       p.TanggalPinjam.Format(DateFormat),
		TanggalKembali:      p.TanggalKembali.Format(DateFormat),
		Keterangan:          p.Keterangan,
		Status:              p.Status,
		BuktiFotoPinjam:     p.BuktiFotoPinjam,
		KondisiPengembalian: p.KondisiPengembalian,
		BuktiFotoKembali:    p.BuktiFotoKembali,
		CreatedAt:           p.CreatedAt,
	}

	if p.TanggalPengembalianAktual != nil {
		actual := p.TanggalPengembalianAktual.Format(DateFormat)
		resp.TanggalPengembalianAktual = &actual
	}
	if p.Barang.ID != 0 {
		barang := p.Barang
		resp.Barang = &barang
	}
	if p.User.ID != 0 {
		user := p.User.ToResponse()
		resp.User = &user
	}

	return resp
}
