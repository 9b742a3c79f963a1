package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ukmstimbara/inventaris-api/internal/config"
	"github.com/ukmstimbara/inventaris-api/internal/jobs"
	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
	"github.com/ukmstimbara/inventaris-api/internal/services"
	"github.com/ukmstimbara/inventaris-api/internal/storage"
)

type stubUserRepo struct {
	repository.UserRepository
	user *models.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return s.user, nil
}

type stubPeminjamanRepo struct {
	repository.PeminjamanRepository
	loan *models.Peminjaman
}

func (s *stubPeminjamanRepo) FindByIDWithDetails(ctx context.Context, id uint) (*models.Peminjaman, error) {
	return s.loan, nil
}

type stubSettingsRepo struct {
	repository.SettingsRepository
}

func (s *stubSettingsRepo) Get(ctx context.Context) (*models.SystemSettings, error) {
	return models.DefaultSettings(), nil
}

type stubBarangRepo struct {
	repository.BarangRepository
}

type stubAuditRepo struct {
	repository.AuditRepository
}

func (s *stubAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error { return nil }
func (s *stubAuditRepo) Count(ctx context.Context) (int64, error)                 { return 0, nil }

type stubNotificationRepo struct {
	repository.NotificationRepository
}

func (s *stubNotificationRepo) Create(ctx context.Context, n *models.Notification) error { return nil }

func TestReturnHandlerRemovesPhotoOnRefusedReturn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	borrower := &models.User{ID: 7, Nama: "Budi", Role: models.RoleAnggota}
	loan := &models.Peminjaman{
		ID:     5,
		IDUser: 7,
		Status: models.LoanStatusMenunggu,
		Barang: models.Barang{NamaAlat: "Kamera"},
		User:   *borrower,
	}

	worker := jobs.NewWorker(1)
	t.Cleanup(worker.Shutdown)

	userRepo := &stubUserRepo{user: borrower}
	settingsRepo := &stubSettingsRepo{}
	auditSvc := services.NewAuditService(&stubAuditRepo{})
	notificationSvc := services.NewNotificationService(&stubNotificationRepo{}, userRepo)
	barangSvc := services.NewBarangService(&stubBarangRepo{}, auditSvc)
	emailSvc := services.NewEmailService(&config.Config{})
	loanRepo := &stubPeminjamanRepo{loan: loan}

	peminjamanSvc := services.NewPeminjamanService(
		loanRepo, userRepo, settingsRepo, barangSvc, notificationSvc, emailSvc, auditSvc, worker)
	userSvc := services.NewUserService(userRepo, settingsRepo, notificationSvc, auditSvc, worker)
	reportSvc := services.NewReportService(loanRepo, settingsRepo)

	store, err := storage.NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	handler := NewPeminjamanHandler(peminjamanSvc, userSvc, reportSvc, store)

	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	assert.NoError(t, mw.WriteField("kondisi_pengembalian", "Baik"))
	part, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="bukti_foto"; filename="bukti.png"`},
		"Content-Type":        {"image/png"},
	})
	assert.NoError(t, err)
	_, err = io.WriteString(part, "not-really-a-png")
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/peminjaman/5/return", body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Set("userID", uint(7))
	c.Set("username", "budi")
	c.Set("userRole", models.RoleAnggota)

	handler.Return(c)

	// a pending loan cannot be returned
	assert.Equal(t, http.StatusConflict, w.Code)

	// the uploaded evidence photo must not linger after the refusal
	leftovers := 0
	err = filepath.WalkDir(store.GetFullPath(""), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			leftovers++
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Zero(t, leftovers)
}
