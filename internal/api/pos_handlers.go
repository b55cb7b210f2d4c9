package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/services"
)

// POSHandlers contains POS integration handlers
type POSHandlers struct {
	posSyncService *services.POSSyncService
}

// NewPOSHandlers creates new POS handlers
func NewPOSHandlers(posSyncService *services.POSSyncService) *POSHandlers {
	return &POSHandlers{posSyncService: posSyncService}
}

// SyncStore pulls the external POS product feed for one store and
// imports it into the local inventory
func (h *POSHandlers) SyncStore(c *gin.Context) {
	userID := c.GetString("userID")

	result, err := h.posSyncService.SyncStore(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPOSNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "POS integration is not configured",
			})
		case errors.Is(err, services.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Store not found",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"success": false,
				"error":   err.Error(),
				"data":    result,
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetSyncHistory lists past sync runs for a store
func (h *POSHandlers) GetSyncHistory(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	history, err := h.posSyncService.GetSyncHistory(c.Param("id"), userID, limit)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Store not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch sync history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}
