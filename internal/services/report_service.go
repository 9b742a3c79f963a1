package services

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"gorm.io/gorm"

	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
)

//go:embed templates/reports/*.html
var reportTemplates embed.FS

// ReportService renders loan receipts as PDF
type ReportService struct {
	peminjamanRepo repository.PeminjamanRepository
	settingsRepo   repository.SettingsRepository
}

func NewReportService(peminjamanRepo repository.PeminjamanRepository, settingsRepo repository.SettingsRepository) *ReportService {
	return &ReportService{
		peminjamanRepo: peminjamanRepo,
		settingsRepo:   settingsRepo,
	}
}

// GenerateLoanReceiptPDF renders the pickup receipt for an approved or
// completed loan. Pending and rejected loans have no receipt.
func (s *ReportService) GenerateLoanReceiptPDF(ctx context.Context, loanID uint) (*bytes.Buffer, error) {
	loan, err := s.peminjamanRepo.FindByIDWithDetails(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if loan.Status != models.LoanStatusDisetujui && loan.Status != models.LoanStatusSelesai {
		return nil, ErrInvalidState
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	returnedAt := "-"
	kondisi := "-"
	if loan.TanggalPengembalianAktual != nil {
		returnedAt = loan.TanggalPengembalianAktual.Format("02/01/2006")
	}
	if loan.KondisiPengembalian != nil && *loan.KondisiPengembalian != "" {
		kondisi = *loan.KondisiPengembalian
	}

	data := struct {
		OrganizationName string
		LoanID           uint
		NamaAlat         string
		Brand            string
		Seri             string
		Peminjam         string
		NIM              string
		TanggalPinjam    string
		TanggalKembali   string
		Status           string
		ReturnedAt       string
		Kondisi          string
		Keterangan       string
		ContactName      string
		ContactPhone     string
		PrintedAt        string
	}{
		OrganizationName: settings.OrganizationName,
		LoanID:           loan.ID,
		NamaAlat:         loan.Barang.NamaAlat,
		Brand:            loan.Barang.Brand,
		Seri:             loan.Barang.Seri,
		Peminjam:         loan.User.Nama,
		NIM:              loan.User.NIM,
		TanggalPinjam:    loan.TanggalPinjam.Format("02/01/2006"),
		TanggalKembali:   loan.TanggalKembali.Format("02/01/2006"),
		Status:           loan.Status,
		ReturnedAt:       returnedAt,
		Kondisi:          kondisi,
		Keterangan:       loan.Keterangan,
		ContactName:      settings.AdminContactName,
		ContactPhone:     settings.AdminContactPhone,
		PrintedAt:        time.Now().Format("02/01/2006 15:04"),
	}

	return s.generatePDF("loan_receipt.html", data)
}

func (s *ReportService) generatePDF(templateName string, data interface{}) (*bytes.Buffer, error) {
	tmpl, err := template.ParseFS(reportTemplates, "templates/reports/"+templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(buf.Bytes()))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}
