package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"github.com/ukmstimbara/inventaris-api/internal/config"
	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/pkg/logger"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

func (s *EmailService) SendAccountCreated(ctx context.Context, user *models.User) error {
	if user.Gmail == "" {
		return nil
	}

	data := struct {
		Name     string
		Username string
		AppURL   string
	}{
		Name:     user.Nama,
		Username: user.Username,
		AppURL:   s.config.AppURL,
	}

	body, err := s.renderTemplate("account_created.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Gmail},
		Subject: "Selamat Datang di Sistem Inventaris",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error("failed to send email", "to", user.Gmail, "error", err)
		return err
	}

	logger.Info("email sent", "to", user.Gmail, "subject", "Selamat Datang di Sistem Inventaris")
	return nil
}

func (s *EmailService) SendLoanApproved(ctx context.Context, user *models.User, loan *models.Peminjaman) error {
	if user.Gmail == "" {
		return nil
	}

	data := struct {
		Name           string
		NamaAlat       string
		TanggalPinjam  string
		TanggalKembali string
		AppURL         string
	}{
		Name:           user.Nama,
		NamaAlat:       loan.Barang.NamaAlat,
		TanggalPinjam:  loan.TanggalPinjam.Format("02/01/2006"),
		TanggalKembali: loan.TanggalKembali.Format("02/01/2006"),
		AppURL:         s.config.AppURL,
	}

	body, err := s.renderTemplate("loan_approved.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Gmail},
		Subject: "Peminjaman Disetujui",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error("failed to send email", "to", user.Gmail, "error", err)
		return err
	}

	logger.Info("email sent", "to", user.Gmail, "subject", "Peminjaman Disetujui")
	return nil
}

func (s *EmailService) SendLoanRejected(ctx context.Context, user *models.User, loan *models.Peminjaman) error {
	if user.Gmail == "" {
		return nil
	}

	data := struct {
		Name     string
		NamaAlat string
		AppURL   string
	}{
		Name:     user.Nama,
		NamaAlat: loan.Barang.NamaAlat,
		AppURL:   s.config.AppURL,
	}

	body, err := s.renderTemplate("loan_rejected.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Gmail},
		Subject: "Peminjaman Ditolak",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error("failed to send email", "to", user.Gmail, "error", err)
		return err
	}

	logger.Info("email sent", "to", user.Gmail, "subject", "Peminjaman Ditolak")
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
