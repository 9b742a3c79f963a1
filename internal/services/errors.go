package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("data tidak ditemukan")
	ErrInvalidPassword    = errors.New("kata sandi salah")
	ErrUnauthorized       = errors.New("tidak diizinkan")
	ErrInvalidState       = errors.New("transisi status tidak valid")
	ErrDuplicate          = errors.New("data sudah terdaftar")
	ErrStokHabis          = errors.New("stok barang habis, pengajuan tidak dapat disetujui")
	ErrInvalidDateRange   = errors.New("tanggal kembali tidak boleh lebih awal dari tanggal pinjam")
	ErrNoItemsSelected    = errors.New("pilih minimal satu barang untuk dipinjam")
	ErrMissingEvidence    = errors.New("foto bukti pengembalian wajib diunggah")
	ErrRegistrationClosed = errors.New("pendaftaran anggota baru sedang ditutup")
	ErrLoanLimitReached   = errors.New("batas maksimal peminjaman aktif tercapai")
	ErrLoanTooLong        = errors.New("durasi peminjaman melebihi batas maksimal")
	ErrAccountInactive    = errors.New("akun tidak aktif, hubungi admin")
)
