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
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// @Summary List Notifications
// @Description Get the current user's notifications, newest first
// @Tags Notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	notifications, total, err := h.notificationService.ListForUser(c.Request.Context(), middleware.GetUserID(c), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]models.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, notifications[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// @Summary Mark Notification As Read
// @Description Mark one of the current user's notifications as read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} models.NotificationResponse
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/{id}/mark_as_read [post]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 32)

	notification, err := h.notificationService.MarkAsRead(c.Request.Context(), middleware.GetUserID(c), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Notifikasi tidak ditemukan"})
		case errors.Is(err, services.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Anda tidak memiliki akses ke notifikasi ini"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification.ToResponse()})
}

// @Summary Mark All Notifications As Read
// @Description Mark all of the current user's notifications as read
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /notifications/mark_all_as_read [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Semua notifikasi ditandai telah dibaca"})
}
