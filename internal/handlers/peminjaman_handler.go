package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ukmstimbara/inventaris-api/internal/middleware"
	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
	"github.com/ukmstimbara/inventaris-api/internal/services"
	"github.com/ukmstimbara/inventaris-api/internal/storage"
	"github.com/ukmstimbara/inventaris-api/pkg/logger"
)

type PeminjamanHandler struct {
	peminjamanService *services.PeminjamanService
	userService       *services.UserService
	reportService     *services.ReportService
	storage           *storage.LocalStorage
}

func NewPeminjamanHandler(
	peminjamanService *services.PeminjamanService,
	userService *services.UserService,
	reportService *services.ReportService,
	storage *storage.LocalStorage,
) *PeminjamanHandler {
	return &PeminjamanHandler{
		peminjamanService: peminjamanService,
		userService:       userService,
		reportService:     reportService,
		storage:           storage,
	}
}

func (h *PeminjamanHandler) currentUser(c *gin.Context) (*models.User, error) {
	return h.userService.FindByID(c.Request.Context(), middleware.GetUserID(c))
}

// @Summary List Loans
// @Description Get a paginated list of loans. Members only see their own.
// @Tags Peminjaman
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by item or borrower name"
// @Param status query string false "Filter by loan status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /peminjaman [get]
func (h *PeminjamanHandler) Index(c *gin.Context) {
	query := &repository.PeminjamanQuery{
		ListQuery: repository.NewListQuery(),
		UserID:    middleware.GetUserID(c),
		IsAdmin:   middleware.IsAdmin(c),
		Status:    c.Query("status"),
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")

	loans, total, err := h.peminjamanService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]models.PeminjamanResponse, 0, len(loans))
	for i := range loans {
		responses = append(responses, loans[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"peminjaman": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Loan
// @Description Get a loan by ID
// @Tags Peminjaman
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.PeminjamanResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /peminjaman/{id} [get]
func (h *PeminjamanHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	loan, err := h.peminjamanService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Peminjaman tidak ditemukan"})
		return
	}

	// Members may only inspect their own loans
	if !middleware.IsAdmin(c) && loan.IDUser != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Anda tidak memiliki akses ke peminjaman ini"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"peminjaman": loan.ToResponse()})
}

// @Summary Submit Loan
// @Description Submit a loan request for one or more items. Accepts multipart form with an optional evidence photo.
// @Tags Peminjaman
// @Accept multipart/form-data
// @Produce json
// @Param item_ids formData string true "Comma separated item IDs"
// @Param tanggal_pinjam formData string true "Loan date (YYYY-MM-DD)"
// @Param tanggal_kembali formData string true "Return date (YYYY-MM-DD)"
// @Param keterangan formData string false "Purpose"
// @Param bukti_foto formData file false "Pickup evidence photo"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /peminjaman [post]
func (h *PeminjamanHandler) Create(c *gin.Context) {
	borrower, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Pengguna tidak ditemukan"})
		return
	}

	itemIDs, err := parseIDList(c.PostForm("item_ids"))
	if err != nil || len(itemIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pilih minimal satu barang"})
		return
	}

	tanggalPinjam, err := time.Parse(models.DateFormat, c.PostForm("tanggal_pinjam"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format tanggal_pinjam tidak valid (YYYY-MM-DD)"})
		return
	}
	tanggalKembali, err := time.Parse(models.DateFormat, c.PostForm("tanggal_kembali"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format tanggal_kembali tidak valid (YYYY-MM-DD)"})
		return
	}

	buktiFoto := ""
	if file, header, err := c.Request.FormFile("bukti_foto"); err == nil {
		defer file.Close()
		path, err := h.storage.UploadImage(file, header, storage.DirBukti)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		buktiFoto = path
	}

	loans, err := h.peminjamanService.Submit(c.Request.Context(), borrower, services.SubmitLoanInput{
		ItemIDs:         itemIDs,
		TanggalPinjam:   tanggalPinjam,
		TanggalKembali:  tanggalKembali,
		Keterangan:      c.PostForm("keterangan"),
		BuktiFotoPinjam: buktiFoto,
	})
	if err != nil {
		h.discardUpload(buktiFoto)
		switch {
		case errors.Is(err, services.ErrNoItemsSelected),
			errors.Is(err, services.ErrInvalidDateRange),
			errors.Is(err, services.ErrLoanTooLong),
			errors.Is(err, services.ErrLoanLimitReached):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	responses := make([]models.PeminjamanResponse, 0, len(loans))
	for i := range loans {
		responses = append(responses, loans[i].ToResponse())
	}

	c.JSON(http.StatusCreated, gin.H{"peminjaman": responses})
}

// @Summary Approve Loan
// @Description Approve a pending loan (admin only)
// @Tags Peminjaman
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.PeminjamanResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /peminjaman/{id}/approve [post]
func (h *PeminjamanHandler) Approve(c *gin.Context) {
	actor, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Pengguna tidak ditemukan"})
		return
	}

	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	loan, err := h.peminjamanService.Approve(c.Request.Context(), actor, uint(id))
	if err != nil {
		h.renderLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"peminjaman": loan.ToResponse()})
}

// @Summary Reject Loan
// @Description Reject a pending loan (admin only)
// @Tags Peminjaman
// @Produce json
// @Param id path int true "Loan ID"
// @Success 200 {object} models.PeminjamanResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /peminjaman/{id}/reject [post]
func (h *PeminjamanHandler) Reject(c *gin.Context) {
	actor, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Pengguna tidak ditemukan"})
		return
	}

	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	loan, err := h.peminjamanService.Reject(c.Request.Context(), actor, uint(id))
	if err != nil {
		h.renderLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"peminjaman": loan.ToResponse()})
}

// @Summary Return Loan
// @Description Complete an approved loan with return condition and evidence photo
// @Tags Peminjaman
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Loan ID"
// @Param kondisi_pengembalian formData string true "Condition at return"
// @Param bukti_foto formData file true "Return evidence photo"
// @Success 200 {object} models.PeminjamanResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /peminjaman/{id}/return [post]
func (h *PeminjamanHandler) Return(c *gin.Context) {
	actor, err := h.currentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Pengguna tidak ditemukan"})
		return
	}

	buktiFoto := ""
	if file, header, err := c.Request.FormFile("bukti_foto"); err == nil {
		defer file.Close()
		path, err := h.storage.UploadImage(file, header, storage.DirBukti)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		buktiFoto = path
	}

	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	loan, err := h.peminjamanService.Return(c.Request.Context(), actor, uint(id), services.ReturnInput{
		KondisiPengembalian: c.PostForm("kondisi_pengembalian"),
		BuktiFotoKembali:    buktiFoto,
	})
	if err != nil {
		// the photo was stored before validation, drop it on a refused return
		h.discardUpload(buktiFoto)
		h.renderLoanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"peminjaman": loan.ToResponse()})
}

// @Summary Loan Receipt
// @Description Download the pickup receipt PDF for an approved or completed loan
// @Tags Peminjaman
// @Produce application/pdf
// @Param id path int true "Loan ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /peminjaman/{id}/receipt [get]
func (h *PeminjamanHandler) Receipt(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	loan, err := h.peminjamanService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Peminjaman tidak ditemukan"})
		return
	}
	if !middleware.IsAdmin(c) && loan.IDUser != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Anda tidak memiliki akses ke peminjaman ini"})
		return
	}

	buf, err := h.reportService.GenerateLoanReceiptPDF(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": "Bukti hanya tersedia untuk peminjaman yang disetujui"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("bukti_peminjaman_%d.pdf", id)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *PeminjamanHandler) renderLoanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Peminjaman tidak ditemukan"})
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrStokHabis):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMissingEvidence):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// discardUpload removes an evidence photo whose request was refused
func (h *PeminjamanHandler) discardUpload(path string) {
	if path == "" {
		return
	}
	if err := h.storage.Delete(path); err != nil {
		logger.Warn("failed to remove unused evidence photo", "path", path, "error", err)
	}
}

// parseIDList splits a comma separated list of numeric ids
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []uint
	for _, part := range splitAndTrim(raw, ",") {
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
