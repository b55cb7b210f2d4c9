package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/services"
)

// DashboardHandlers serves dashboard aggregates
type DashboardHandlers struct {
	analyticsService *services.AnalyticsService
	storeService     *services.StoreService
	userService      *services.UserService
	wsService        *services.WebSocketService
}

// NewDashboardHandlers creates new dashboard handlers
func NewDashboardHandlers(analyticsService *services.AnalyticsService, storeService *services.StoreService, userService *services.UserService, wsService *services.WebSocketService) *DashboardHandlers {
	return &DashboardHandlers{
		analyticsService: analyticsService,
		storeService:     storeService,
		userService:      userService,
		wsService:        wsService,
	}
}

// GetDashboardStats assembles the dashboard aggregates for the
// authenticated user, scoped by their store context
func (h *DashboardHandlers) GetDashboardStats(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "User not found",
		})
		return
	}

	ctx, err := h.storeService.GetStoreContext(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to resolve store context",
		})
		return
	}

	stats, err := h.analyticsService.GetDashboardStats(userID, ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to build dashboard stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// HandleWebSocket upgrades a dashboard connection for live events
func (h *DashboardHandlers) HandleWebSocket(c *gin.Context) {
	h.wsService.HandleWebSocket(c)
}
