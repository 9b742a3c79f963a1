package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ukmstimbara/inventaris-api/internal/models"
)

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	assert.NoError(t, err)
	return records
}

func TestExportService_ExportBarangCSV(t *testing.T) {
	barangRepo := &mockBarangRepo{
		mockFindAll: func(ctx context.Context) ([]models.Barang, error) {
			return []models.Barang{
				{NamaAlat: "Kamera DSLR", Jenis: "Elektronik", Brand: "Canon", Stok: 3, Status: models.ItemStatusTersedia},
				{NamaAlat: "Tripod", Jenis: "Aksesoris", Stok: 0, Status: models.ItemStatusDipinjam},
			}, nil
		},
	}
	service := NewExportService(barangRepo, &mockPeminjamanRepo{})

	data, filename, err := service.ExportBarangCSV(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "inventaris_"+time.Now().Format("2006-01-02")+".csv", filename)

	// the blank spacer line is skipped by the reader: title, header, one row per item
	records := readCSV(t, data)
	assert.Len(t, records, 4)
	assert.Equal(t, barangExportHeader, records[1])
	assert.Equal(t, "Kamera DSLR", records[2][1])
	assert.Equal(t, "0", records[3][7])
}

func TestExportService_ExportPeminjamanCSV(t *testing.T) {
	returnedAt := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	kondisi := "Baik"
	peminjamanRepo := &mockPeminjamanRepo{
		mockFindAllWithDetails: func(ctx context.Context) ([]models.Peminjaman, error) {
			return []models.Peminjaman{
				{
					Barang:                    models.Barang{NamaAlat: "Kamera DSLR"},
					User:                      models.User{Nama: "Budi Santoso"},
					TanggalPinjam:             time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
					TanggalKembali:            time.Date(2026, 3, 8, 0, 0, 0, 0, time.Local),
					Status:                    models.LoanStatusSelesai,
					TanggalPengembalianAktual: &returnedAt,
					KondisiPengembalian:       &kondisi,
				},
			}, nil
		},
	}
	service := NewExportService(&mockBarangRepo{}, peminjamanRepo)

	data, filename, err := service.ExportPeminjamanCSV(context.Background())
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	records := readCSV(t, data)
	row := records[len(records)-1]
	assert.Equal(t, "Kamera DSLR", row[1])
	assert.Equal(t, "Budi Santoso", row[2])
	assert.Equal(t, "2026-03-10", row[6])
	assert.Equal(t, "Baik", row[7])
}

func TestExportService_ExportBarangXLSX(t *testing.T) {
	barangRepo := &mockBarangRepo{
		mockFindAll: func(ctx context.Context) ([]models.Barang, error) {
			return []models.Barang{{NamaAlat: "Proyektor", Stok: 2}}, nil
		},
	}
	service := NewExportService(barangRepo, &mockPeminjamanRepo{})

	data, filename, err := service.ExportBarangXLSX(context.Background())
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
	assert.NotEmpty(t, data)
}
