package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/services"
	"stockive-backend/internal/storectx"
)

// NavigationHandlers serves the capability-derived navigation structure
type NavigationHandlers struct {
	userService  *services.UserService
	storeService *services.StoreService
}

// NewNavigationHandlers creates new navigation handlers
func NewNavigationHandlers(userService *services.UserService, storeService *services.StoreService) *NavigationHandlers {
	return &NavigationHandlers{
		userService:  userService,
		storeService: storeService,
	}
}

// GetNavigation derives the navigation entries for the caller. Runs
// behind optional auth: anonymous callers get the login and signup
// entries, authenticated callers get their plan's entries shaped by
// their store hierarchy.
func (h *NavigationHandlers) GetNavigation(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		items := storectx.DeriveNavigation(storectx.StoreContext{}, false, nil)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    items,
		})
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		// Token valid but account gone; treat as anonymous
		items := storectx.DeriveNavigation(storectx.StoreContext{}, false, nil)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    items,
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

	items := storectx.DeriveNavigation(ctx, true, user)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
	})
}
