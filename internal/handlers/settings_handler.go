package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ukmstimbara/inventaris-api/internal/middleware"
	"github.com/ukmstimbara/inventaris-api/internal/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
}

func NewSettingsHandler(settingsService *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// @Summary Get Settings
// @Description Get the full system settings (admin only)
// @Tags Settings
// @Produce json
// @Success 200 {object} models.SystemSettings
// @Security BearerAuth
// @Router /settings [get]
func (h *SettingsHandler) Show(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// @Summary Contact Info
// @Description Public admin contact info for the help page
// @Tags Settings
// @Produce json
// @Success 200 {object} models.ContactResponse
// @Router /settings/contact [get]
func (h *SettingsHandler) Contact(c *gin.Context) {
	contact, err := h.settingsService.Contact(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contact)
}

type UpdateSettingsRequest struct {
	AdminContactName    *string  `json:"adminContactName"`
	AdminContactEmail   *string  `json:"adminContactEmail" binding:"omitempty,email"`
	AdminContactPhone   *string  `json:"adminContactPhone"`
	OrganizationName    *string  `json:"organizationName"`
	MaxItemsPerUser     *int     `json:"maxItemsPerUser" binding:"omitempty,min=1"`
	MaxLoanDurationDays *int     `json:"maxLoanDurationDays" binding:"omitempty,min=1"`
	IsRegistrationOpen  *bool    `json:"isRegistrationOpen"`
	Categories          []string `json:"categories"`
}

// @Summary Update Settings
// @Description Update system settings (admin only)
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Settings Fields"
// @Success 200 {object} models.SystemSettings
// @Security BearerAuth
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c), services.UpdateSettingsInput{
		AdminContactName:    req.AdminContactName,
		AdminContactEmail:   req.AdminContactEmail,
		AdminContactPhone:   req.AdminContactPhone,
		OrganizationName:    req.OrganizationName,
		MaxItemsPerUser:     req.MaxItemsPerUser,
		MaxLoanDurationDays: req.MaxLoanDurationDays,
		IsRegistrationOpen:  req.IsRegistrationOpen,
		Categories:          req.Categories,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
