package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/services"
)

// NotificationHandlers contains notification handlers
type NotificationHandlers struct {
	notificationService *services.NotificationService
}

// NewNotificationHandlers creates new notification handlers
func NewNotificationHandlers(notificationService *services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationService: notificationService}
}

// GetNotifications lists the authenticated user's notifications
func (h *NotificationHandlers) GetNotifications(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.GetNotifications(userID, unreadOnly, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
	})
}

// MarkNotificationRead marks one notification read
func (h *NotificationHandlers) MarkNotificationRead(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.notificationService.MarkRead(c.Param("id"), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Notification not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update notification",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked read",
	})
}

// MarkAllNotificationsRead marks every notification read
func (h *NotificationHandlers) MarkAllNotificationsRead(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to update notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All notifications marked read",
	})
}
