package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ukmstimbara/inventaris-api/internal/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

var exportContentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":  "application/pdf",
}

// @Summary Export Inventory
// @Description Download the inventory report (admin only)
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /exports/barang [get]
func (h *ExportHandler) Barang(c *gin.Context) {
	h.render(c, c.DefaultQuery("format", "csv"), map[string]func(context.Context) ([]byte, string, error){
		"csv":  h.exportService.ExportBarangCSV,
		"xlsx": h.exportService.ExportBarangXLSX,
		"pdf":  h.exportService.ExportBarangPDF,
	})
}

// @Summary Export Loans
// @Description Download the loan report (admin only)
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv, xlsx or pdf" default(csv)
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /exports/peminjaman [get]
func (h *ExportHandler) Peminjaman(c *gin.Context) {
	h.render(c, c.DefaultQuery("format", "csv"), map[string]func(context.Context) ([]byte, string, error){
		"csv":  h.exportService.ExportPeminjamanCSV,
		"xlsx": h.exportService.ExportPeminjamanXLSX,
		"pdf":  h.exportService.ExportPeminjamanPDF,
	})
}

func (h *ExportHandler) render(c *gin.Context, format string, exporters map[string]func(context.Context) ([]byte, string, error)) {
	export, ok := exporters[format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format tidak didukung, gunakan csv, xlsx atau pdf"})
		return
	}

	data, filename, err := export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, exportContentTypes[format], data)
}
