package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
)

// ExportService renders inventory and loan reports as CSV, XLSX and PDF
type ExportService struct {
	barangRepo     repository.BarangRepository
	peminjamanRepo repository.PeminjamanRepository
}

func NewExportService(barangRepo repository.BarangRepository, peminjamanRepo repository.PeminjamanRepository) *ExportService {
	return &ExportService{
		barangRepo:     barangRepo,
		peminjamanRepo: peminjamanRepo,
	}
}

var barangExportHeader = []string{"ID", "Nama Alat", "Jenis", "Brand", "Seri", "Kondisi", "Status", "Stok", "Catatan"}

func barangExportRow(b *models.Barang) []string {
	return []string{
		fmt.Sprintf("%d", b.ID),
		b.NamaAlat,
		b.Jenis,
		b.Brand,
		b.Seri,
		b.Kondisi,
		b.Status,
		fmt.Sprintf("%d", b.Stok),
		b.Catatan,
	}
}

var peminjamanExportHeader = []string{"ID", "Barang", "Peminjam", "Tanggal Pinjam", "Tanggal Kembali", "Status", "Tanggal Pengembalian", "Kondisi Pengembalian", "Keterangan"}

func peminjamanExportRow(p *models.Peminjaman) []string {
	returnedAt := ""
	if p.TanggalPengembalianAktual != nil {
		returnedAt = p.TanggalPengembalianAktual.Format(models.DateFormat)
	}
	kondisi := ""
	if p.KondisiPengembalian != nil {
		kondisi = *p.KondisiPengembalian
	}
	return []string{
		fmt.Sprintf("%d", p.ID),
		p.Barang.NamaAlat,
		p.User.Nama,
		p.TanggalPinjam.Format(models.DateFormat),
		p.TanggalKembali.Format(models.DateFormat),
		p.Status,
		returnedAt,
		kondisi,
		p.Keterangan,
	}
}

func (s *ExportService) ExportBarangCSV(ctx context.Context) ([]byte, string, error) {
	items, err := s.barangRepo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Laporan Inventaris", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write(barangExportHeader)
	for i := range items {
		_ = writer.Write(barangExportRow(&items[i]))
	}
	writer.Flush()

	filename := fmt.Sprintf("inventaris_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportBarangXLSX(ctx context.Context) ([]byte, string, error) {
	items, err := s.barangRepo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventaris"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, title := range barangExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, item := range items {
		values := barangExportRow(&item)
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("inventaris_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportBarangPDF(ctx context.Context) ([]byte, string, error) {
	items, err := s.barangRepo.FindAll(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Laporan Inventaris")
	pdf.Ln(12)

	widths := []float64{12, 55, 30, 30, 30, 25, 30, 15, 50}

	pdf.SetFont("Arial", "B", 9)
	for i, title := range barangExportHeader {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i := range items {
		values := barangExportRow(&items[i])
		for j, value := range values {
			pdf.CellFormat(widths[j], 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("inventaris_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportPeminjamanCSV(ctx context.Context) ([]byte, string, error) {
	loans, err := s.peminjamanRepo.FindAllWithDetails(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Laporan Peminjaman", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})
	_ = writer.Write(peminjamanExportHeader)
	for i := range loans {
		_ = writer.Write(peminjamanExportRow(&loans[i]))
	}
	writer.Flush()

	filename := fmt.Sprintf("peminjaman_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportPeminjamanXLSX(ctx context.Context) ([]byte, string, error) {
	loans, err := s.peminjamanRepo.FindAllWithDetails(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Peminjaman"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, title := range peminjamanExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, loan := range loans {
		values := peminjamanExportRow(&loan)
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("peminjaman_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportPeminjamanPDF(ctx context.Context) ([]byte, string, error) {
	loans, err := s.peminjamanRepo.FindAllWithDetails(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Laporan Peminjaman")
	pdf.Ln(12)

	widths := []float64{12, 50, 40, 28, 28, 22, 32, 30, 35}

	pdf.SetFont("Arial", "B", 9)
	for i, title := range peminjamanExportHeader {
		pdf.CellFormat(widths[i], 8, title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i := range loans {
		values := peminjamanExportRow(&loans[i])
		for j, value := range values {
			pdf.CellFormat(widths[j], 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("peminjaman_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
