package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
)

// StoreHandlers contains store management handlers
type StoreHandlers struct {
	storeService *services.StoreService
	userService  *services.UserService
}

// NewStoreHandlers creates new store handlers
func NewStoreHandlers(storeService *services.StoreService, userService *services.UserService) *StoreHandlers {
	return &StoreHandlers{
		storeService: storeService,
		userService:  userService,
	}
}

// CreateStore creates a new store for the authenticated user
func (h *StoreHandlers) CreateStore(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.StoreCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	store, err := h.storeService.CreateStore(&req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    store,
	})
}

// GetStores lists the authenticated user's stores
func (h *StoreHandlers) GetStores(c *gin.Context) {
	userID := c.GetString("userID")

	stores, err := h.storeService.GetStoresByOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch stores",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stores,
	})
}

// GetStore fetches one store
func (h *StoreHandlers) GetStore(c *gin.Context) {
	userID := c.GetString("userID")

	store, err := h.storeService.GetStore(c.Param("id"), userID)
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
			"error":   "Failed to fetch store",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store,
	})
}

// GetStoreContext returns the classified store hierarchy for the
// authenticated user: main store, sub-stores and the multi-store flag
func (h *StoreHandlers) GetStoreContext(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ctx,
	})
}

// UpdateStore updates a store's details
func (h *StoreHandlers) UpdateStore(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.StoreUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	store, err := h.storeService.UpdateStore(c.Param("id"), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Store not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store,
	})
}

// UpdatePOSConfig updates a store's POS integration settings
func (h *StoreHandlers) UpdatePOSConfig(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.POSConfigUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	store, err := h.storeService.UpdatePOSConfig(c.Param("id"), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Store not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store,
	})
}

// DeleteStore deletes a store and its id-referenced products
func (h *StoreHandlers) DeleteStore(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.storeService.DeleteStore(c.Param("id"), userID); err != nil {
		if errors.Is(err, services.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Store not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Store deleted",
	})
}
