package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockive-backend/internal/models"
	"stockive-backend/internal/services"
)

// SupplierHandlers contains supplier management handlers
type SupplierHandlers struct {
	supplierService *services.SupplierService
}

// NewSupplierHandlers creates new supplier handlers
func NewSupplierHandlers(supplierService *services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

// CreateSupplier creates a new supplier
func (h *SupplierHandlers) CreateSupplier(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.SupplierCreation
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	supplier, err := h.supplierService.CreateSupplier(&req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// GetSuppliers lists the authenticated user's suppliers
func (h *SupplierHandlers) GetSuppliers(c *gin.Context) {
	userID := c.GetString("userID")

	suppliers, err := h.supplierService.GetSuppliersByOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch suppliers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    suppliers,
	})
}

// GetSupplier fetches one supplier
func (h *SupplierHandlers) GetSupplier(c *gin.Context) {
	userID := c.GetString("userID")

	supplier, err := h.supplierService.GetSupplier(c.Param("id"), userID)
	if err != nil {
		h.supplierError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// UpdateSupplier updates a supplier
func (h *SupplierHandlers) UpdateSupplier(c *gin.Context) {
	userID := c.GetString("userID")

	var req models.SupplierUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Param("id"), userID, &req)
	if err != nil {
		h.supplierError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// DeleteSupplier deletes a supplier; purchase order history stays
func (h *SupplierHandlers) DeleteSupplier(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.supplierService.DeleteSupplier(c.Param("id"), userID); err != nil {
		h.supplierError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Supplier deleted",
	})
}

func (h *SupplierHandlers) supplierError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSupplierNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Supplier not found",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
