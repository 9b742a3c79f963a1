package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ukmstimbara/inventaris-api/internal/middleware"
	"github.com/ukmstimbara/inventaris-api/internal/models"
	"github.com/ukmstimbara/inventaris-api/internal/repository"
	"github.com/ukmstimbara/inventaris-api/internal/services"
	"github.com/ukmstimbara/inventaris-api/internal/storage"
)

type BarangHandler struct {
	barangService *services.BarangService
	storage       *storage.LocalStorage
}

func NewBarangHandler(barangService *services.BarangService, storage *storage.LocalStorage) *BarangHandler {
	return &BarangHandler{
		barangService: barangService,
		storage:       storage,
	}
}

// @Summary List Items
// @Description Get a paginated list of inventory items
// @Tags Barang
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search by name, brand or serial"
// @Param jenis query string false "Filter by category"
// @Param status query string false "Filter by availability status"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /barang [get]
func (h *BarangHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	query.Filters["jenis"] = c.Query("jenis")
	query.Filters["status"] = c.Query("status")

	items, total, err := h.barangService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barang": items,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Get Item
// @Description Get an inventory item by ID
// @Tags Barang
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} models.Barang
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /barang/{id} [get]
func (h *BarangHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
	barang, err := h.barangService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"barang": barang})
}

type BarangRequest struct {
	NamaAlat string `json:"nama_alat" binding:"required"`
	Jenis    string `json:"jenis"`
	Brand    string `json:"brand"`
	Seri     string `json:"seri"`
	Kondisi  string `json:"kondisi"`
	Status   string `json:"status"`
	Stok     int    `json:"stok" binding:"min=0"`
	Catatan  string `json:"catatan"`
}

// @Summary Create Item
// @Description Register a new inventory item (admin only)
// @Tags Barang
// @Accept json
// @Produce json
// @Param request body BarangRequest true "Item Data"
// @Success 201 {object} models.Barang
// @Security BearerAuth
// @Router /barang [post]
func (h *BarangHandler) Create(c *gin.Context) {
	var req BarangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	barang := &models.Barang{
		NamaAlat: req.NamaAlat,
		Jenis:    req.Jenis,
		Brand:    req.Brand,
		Seri:     req.Seri,
		Kondisi:  req.Kondisi,
		Status:   req.Status,
		Stok:     req.Stok,
		Catatan:  req.Catatan,
	}

	if err := h.barangService.Create(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c), barang); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"barang": barang})
}

// @Summary Update Item
// @Description Update an inventory item (admin only)
// @Tags Barang
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body BarangRequest true "Item Data"
// @Success 200 {object} models.Barang
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /barang/{id} [put]
func (h *BarangHandler) Update(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	existing, err := h.barangService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
		return
	}

	var req BarangRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing.NamaAlat = req.NamaAlat
	existing.Jenis = req.Jenis
	existing.Brand = req.Brand
	existing.Seri = req.Seri
	existing.Kondisi = req.Kondisi
	existing.Status = req.Status
	existing.Stok = req.Stok
	existing.Catatan = req.Catatan

	if err := h.barangService.Update(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c), existing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"barang": existing})
}

// @Summary Upload Item Photo
// @Description Upload a photo for an inventory item (admin only)
// @Tags Barang
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Item ID"
// @Param photo formData file true "Item Photo"
// @Success 200 {object} models.Barang
// @Security BearerAuth
// @Router /barang/{id}/photo [post]
func (h *BarangHandler) UploadPhoto(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	barang, err := h.barangService.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File foto wajib diunggah"})
		return
	}
	defer file.Close()

	path, err := h.storage.UploadImage(file, header, storage.DirBarang)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	barang.Foto = path
	if err := h.barangService.Update(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c), barang); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"barang": barang})
}

// @Summary Delete Item
// @Description Remove an inventory item (admin only)
// @Tags Barang
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /barang/{id} [delete]
func (h *BarangHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	err := h.barangService.Delete(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Barang tidak ditemukan"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barang berhasil dihapus"})
}
